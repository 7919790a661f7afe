package upstream

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"hostbridge/internal/api"
)

// maxResponseBytes caps how much of an upstream response is buffered.
// The hosting API's largest legitimate payloads (full DNS zone dumps)
// are well under this.
const maxResponseBytes = 8 << 20

// maxExcerptLen bounds the markup-stripped excerpt surfaced to callers
// when the upstream answers with an HTML error page.
const maxExcerptLen = 200

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// idPattern recognizes the upstream's bare reference identifiers
	// (numeric IDs, order references like "web-123.example"). Applied
	// only when a call opts into ScalarID.
	idPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
)

// normalize collapses every observed upstream response shape into the
// single success/failure convention handlers rely on. The decision
// tree, in order:
//
//  1. HTML payload (any status): protocol error with a stripped excerpt.
//  2. Error status with a structured JSON body: rejected, preserving
//     the status code and the upstream's message.
//  3. Error status otherwise: rejected with the status alone.
//  4. Empty body, empty object, or JSON null: the call's declared
//     empty-success default, or nil data when none is declared.
//  5. Valid JSON: passed through, with the opt-in singular-array
//     unwrap and bare-scalar-identifier wrap applied.
//  6. Anything else: protocol error, never guessed at.
func normalize(status int, contentType string, payload []byte, o callOptions) (interface{}, error) {
	if isHTML(contentType, payload) {
		return nil, &api.InvocationError{
			Kind:    api.KindUpstreamProtocolError,
			Message: fmt.Sprintf("upstream returned an HTML page instead of data: %s", htmlExcerpt(payload)),
			Cause:   fmt.Sprintf("status %d", status),
		}
	}

	if status >= 400 {
		return nil, rejection(status, payload)
	}

	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" || trimmed == "{}" || trimmed == "null" {
		if o.hasDefault {
			return o.emptyDefault, nil
		}
		return nil, nil
	}

	if !gjson.Valid(trimmed) {
		return nil, &api.InvocationError{
			Kind:    api.KindUpstreamProtocolError,
			Message: "upstream returned a payload that is not valid JSON",
			Cause:   fmt.Sprintf("status %d", status),
		}
	}

	var data interface{}
	if err := json.Unmarshal([]byte(trimmed), &data); err != nil {
		return nil, &api.InvocationError{
			Kind:    api.KindUpstreamProtocolError,
			Message: fmt.Sprintf("decoding upstream response: %v", err),
			Cause:   fmt.Sprintf("status %d", status),
		}
	}

	switch v := data.(type) {
	case string:
		// Some endpoints answer with a bare identifier where their
		// contract promises an object.
		if o.scalarID {
			if idPattern.MatchString(v) {
				return map[string]interface{}{"id": v}, nil
			}
			return nil, &api.InvocationError{
				Kind:    api.KindUpstreamProtocolError,
				Message: fmt.Sprintf("upstream returned a bare string that does not look like an identifier: %q", clip(v, maxExcerptLen)),
			}
		}
		return v, nil
	case []interface{}:
		if o.singular {
			if len(v) == 0 {
				if o.hasDefault {
					return o.emptyDefault, nil
				}
				return nil, nil
			}
			return v[0], nil
		}
		return v, nil
	default:
		return data, nil
	}
}

// rejection builds the UpstreamRejected error for an HTTP error status,
// digging the upstream's message out of the handful of JSON error
// envelopes it has been observed to use.
func rejection(status int, payload []byte) *api.InvocationError {
	cause := fmt.Sprintf("status %d", status)

	if gjson.ValidBytes(payload) {
		for _, path := range []string{"error.message", "error", "message", "detail"} {
			if msg := gjson.GetBytes(payload, path); msg.Type == gjson.String && msg.Str != "" {
				return &api.InvocationError{
					Kind:    api.KindUpstreamRejected,
					Message: msg.Str,
					Cause:   fmt.Sprintf("%s: %s", cause, msg.Str),
				}
			}
		}
	}

	return &api.InvocationError{
		Kind:    api.KindUpstreamRejected,
		Message: fmt.Sprintf("upstream rejected the request with status %d", status),
		Cause:   cause,
	}
}

// isHTML recognizes an HTML error page by content type or by payload
// shape. Load balancers in front of the upstream serve these with
// both 200 and 5xx statuses.
func isHTML(contentType string, payload []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	trimmed := strings.TrimSpace(string(payload))
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html")
}

// htmlExcerpt strips markup from an HTML payload and returns a short,
// whitespace-collapsed excerpt safe to put in a caller-visible message.
func htmlExcerpt(payload []byte) string {
	text := tagPattern.ReplaceAllString(string(payload), " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return clip(strings.TrimSpace(text), maxExcerptLen)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
