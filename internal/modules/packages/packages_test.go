package packages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostbridge/internal/api"
	"hostbridge/internal/upstream"
	"hostbridge/internal/validate"
)

func newTestModule(t *testing.T, handler http.HandlerFunc) *Module {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := upstream.NewClient(srv.URL, upstream.NewCredentials("k", "o", "c"), time.Second)
	return New(client)
}

func TestCreatePackageValidatesPrimaryDomain(t *testing.T) {
	m := newTestModule(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected")
	})

	_, err := m.createPackage(context.Background(), map[string]interface{}{
		"domain_name":  "no spaces allowed",
		"package_type": "starter",
		"username":     "user",
		"password":     "pw",
	})

	argErr := validate.AsArgument(err)
	require.NotNil(t, argErr)
	assert.Equal(t, "domain_name", argErr.Field)
}

func TestGetPackageLimitsUnlimitedPlanDefaults(t *testing.T) {
	m := newTestModule(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/packages/pkg-1/limits", r.URL.Path)
		w.Write([]byte(`{}`))
	})

	data, err := m.getPackageLimits(context.Background(), map[string]interface{}{"package_id": "pkg-1"})
	require.NoError(t, err)

	limits, ok := data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 0, limits["diskMB"])
}

func TestUpstreamRejectionSurfacesKind(t *testing.T) {
	m := newTestModule(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"domain already hosted"}`))
	})

	_, err := m.createPackage(context.Background(), map[string]interface{}{
		"domain_name":  "example.com",
		"package_type": "starter",
		"username":     "user",
		"password":     "pw",
	})

	invErr := api.AsInvocation(err)
	require.NotNil(t, invErr)
	assert.Equal(t, api.KindUpstreamRejected, invErr.Kind)
	assert.Equal(t, "domain already hosted", invErr.Message)
}
