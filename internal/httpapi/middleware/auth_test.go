package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func doAuth(t *testing.T, mw func(http.Handler) http.Handler, header, value string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	mw(okHandler).ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireAdmin(t *testing.T) {
	keys := Keys{Public: []string{"pub_key"}, Admin: []string{"adm_key"}}
	mw := RequireAdmin(keys)

	if code := doAuth(t, mw, "X-API-Key", "adm_key"); code != http.StatusOK {
		t.Fatalf("admin key should pass; got %d", code)
	}
	if code := doAuth(t, mw, "X-API-Key", "pub_key"); code != http.StatusForbidden {
		t.Fatalf("public key should be forbidden; got %d", code)
	}
	if code := doAuth(t, mw, "", ""); code != http.StatusForbidden {
		t.Fatalf("missing key should be forbidden; got %d", code)
	}
}

func TestRequireAny(t *testing.T) {
	keys := Keys{Public: []string{"pub_key"}, Admin: []string{"adm_key"}}
	mw := RequireAny(keys)

	if code := doAuth(t, mw, "X-API-Key", "pub_key"); code != http.StatusOK {
		t.Fatalf("public key should pass; got %d", code)
	}
	if code := doAuth(t, mw, "Authorization", "Bearer adm_key"); code != http.StatusOK {
		t.Fatalf("bearer admin key should pass; got %d", code)
	}
	if code := doAuth(t, mw, "", ""); code != http.StatusUnauthorized {
		t.Fatalf("missing key should be 401; got %d", code)
	}
}

func TestAuth_DisabledWhenNoKeys(t *testing.T) {
	mw := RequireAny(Keys{})
	if code := doAuth(t, mw, "", ""); code != http.StatusOK {
		t.Fatalf("no configured keys should allow all (dev); got %d", code)
	}
	mw = RequireAdmin(Keys{Public: []string{"pub"}})
	if code := doAuth(t, mw, "", ""); code != http.StatusOK {
		t.Fatalf("no admin keys should allow all (dev); got %d", code)
	}
}
