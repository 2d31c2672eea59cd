package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "medixscan/internal/platform/errors"
	pnet "medixscan/internal/platform/net"
	phttp "medixscan/internal/platform/net/http"
)

// helper to build a request with a request_id in context
func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func TestHandleWritesErrorEnvelope(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Error(perr.EmptyInputf("report text is required"))
	})

	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("POST", "/analyze", "rid-1"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if env.Code != perr.ErrorCodeEmptyInput {
		t.Fatalf("code = %v, want empty input", env.Code)
	}
	if env.StatusCode != 400 || env.Error != "report text is required" || env.RequestID != "rid-1" {
		t.Fatalf("bad envelope: %+v", env)
	}
}

func TestHandleMapsUnavailableCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{perr.Enrichmentf("model unreachable"), http.StatusServiceUnavailable},
		{perr.Retrievalf("knowledge base down"), http.StatusServiceUnavailable},
		{perr.StaleCorrectionf("span moved"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		phttp.Handle(func(*http.Request) phttp.Response {
			return phttp.Error(c.err)
		})(rec, httptest.NewRequest("POST", "/x", nil))
		if rec.Code != c.want {
			t.Fatalf("%v -> %d, want %d", c.err, rec.Code, c.want)
		}
	}
}

func TestHandleWritesDataEnvelope(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.OK(map[string]string{"corrected_text": "clear"})
	})

	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("POST", "/analyze", "rid-2"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if env.StatusCode != 200 || env.RequestID != "rid-2" || env.Data == nil {
		t.Fatalf("bad envelope: %+v", env)
	}
	if env.Code != 0 || env.Error != "" {
		t.Fatalf("error fields set on success: %+v", env)
	}
}
