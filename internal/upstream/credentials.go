package upstream

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// Environment variables carrying the upstream credentials. All three
// must be present before startup; their absence is a fatal
// configuration error, never a per-request one.
const (
	EnvAPIKey      = "HOSTBRIDGE_API_KEY"
	EnvOAuthKey    = "HOSTBRIDGE_OAUTH_KEY"
	EnvCombinedKey = "HOSTBRIDGE_COMBINED_KEY"
)

// Credentials is the process-wide credential bundle, read once at
// startup and attached to every upstream call. It is read-only after
// construction and safe for concurrent use. The key material is never
// logged; String is overridden so accidental formatting cannot leak it.
type Credentials struct {
	apiKey      string
	oauthKey    string
	combinedKey string
}

// NewCredentials builds a bundle from explicit key material. Intended
// for tests; production startup goes through CredentialsFromEnv.
func NewCredentials(apiKey, oauthKey, combinedKey string) Credentials {
	return Credentials{apiKey: apiKey, oauthKey: oauthKey, combinedKey: combinedKey}
}

// CredentialsFromEnv reads the three credential values from the
// environment. The returned error names every missing variable so a
// misconfigured deployment can be fixed in one pass.
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		apiKey:      strings.TrimSpace(os.Getenv(EnvAPIKey)),
		oauthKey:    strings.TrimSpace(os.Getenv(EnvOAuthKey)),
		combinedKey: strings.TrimSpace(os.Getenv(EnvCombinedKey)),
	}

	var missing []string
	if creds.apiKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if creds.oauthKey == "" {
		missing = append(missing, EnvOAuthKey)
	}
	if creds.combinedKey == "" {
		missing = append(missing, EnvCombinedKey)
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing required credential environment variables: %s", strings.Join(missing, ", "))
	}
	return creds, nil
}

// authorization returns the bearer value attached to general API
// calls: the configured API key, base64-encoded per the upstream's
// authentication scheme.
func (c Credentials) authorization() string {
	return "Bearer " + base64.StdEncoding.EncodeToString([]byte(c.apiKey))
}

// serviceAuthorization returns the bearer value for the upstream's
// package-service endpoint family, which authenticates with the
// combined key instead of the general API key.
func (c Credentials) serviceAuthorization() string {
	return "Bearer " + base64.StdEncoding.EncodeToString([]byte(c.combinedKey))
}

// OAuthClientKey exposes the OAuth client key for the token-grant
// endpoints that require it as a request field rather than a header.
func (c Credentials) OAuthClientKey() string {
	return c.oauthKey
}

// String implements fmt.Stringer and redacts all key material.
func (c Credentials) String() string {
	return "upstream.Credentials{redacted}"
}
