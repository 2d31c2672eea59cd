package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "medixscan/internal/platform/net"
)

func TestRequesterHeaderExtraction(t *testing.T) {
	var got string
	h := Requester(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = pnet.Requester(r.Context())
	}))

	req := httptest.NewRequest("POST", "/anonymize", nil)
	req.Header.Set("X-Requested-By", "dr.jones")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "dr.jones" {
		t.Fatalf("requester = %q, want dr.jones", got)
	}
}

func TestRequesterMissingHeader(t *testing.T) {
	got := "sentinel"
	h := Requester(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = pnet.Requester(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/anonymize", nil))

	if got != "" {
		t.Fatalf("requester = %q, want empty for missing header", got)
	}
}
