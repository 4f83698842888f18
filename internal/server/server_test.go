package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowAll(t *testing.T) {
	handler := CORSMiddlewareWithConfig(CORSConfig{}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/resolve", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "" {
		t.Error("Allow-Credentials must not be set with wildcard origin")
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"http://allowed.example"}}
	handler := CORSMiddlewareWithConfig(cfg, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/resolve", nil)
	req.Header.Set("Origin", "http://allowed.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://allowed.example" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Allow-Credentials not set for specific origin")
	}

	// Disallowed origin gets no CORS headers.
	req = httptest.NewRequest(http.MethodGet, "/resolve", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("CORS headers set for disallowed origin")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORSMiddlewareWithConfig(CORSConfig{}, okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/resolve", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}

	cfg := CORSConfig{AllowedOrigins: []string{"http://allowed.example"}}
	handler = CORSMiddlewareWithConfig(cfg, okHandler())
	req = httptest.NewRequest(http.MethodOptions, "/resolve", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("disallowed preflight status = %d, want 403", rec.Code)
	}
}

func TestSecurityHeadersWithCSP(t *testing.T) {
	handler := SecurityHeadersWithCSP(APICSPConfig(), okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "default-src 'none'") {
		t.Errorf("CSP = %q", csp)
	}
}

func TestBuildCSPHeaderEmpty(t *testing.T) {
	if got := (CSPConfig{}).BuildCSPHeader(); got != "" {
		t.Errorf("BuildCSPHeader() = %q, want empty", got)
	}
}

func TestSanitizeUserInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  John 3:16  ", "John 3:16"},
		{"John\x003:16", "John3:16"},
		{"John\x01 3:16", "John 3:16"},
		{"line1\nline2", "line1\nline2"},
	}
	for _, tt := range tests {
		if got := SanitizeUserInput(tt.in); got != tt.want {
			t.Errorf("SanitizeUserInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLimitStringLength(t *testing.T) {
	if got := LimitStringLength("abcdef", 3); got != "abc" {
		t.Errorf("LimitStringLength = %q", got)
	}
	if got := LimitStringLength("ab", 3); got != "ab" {
		t.Errorf("LimitStringLength = %q", got)
	}
}

func TestValidateContentType(t *testing.T) {
	if !ValidateContentType("application/json; charset=utf-8", AllowedCorpusContentTypes) {
		t.Error("json with charset rejected")
	}
	if ValidateContentType("text/html", AllowedCorpusContentTypes) {
		t.Error("text/html accepted")
	}
}
