package http_test

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"medixscan/internal/core/corrector"
	"medixscan/internal/core/detector"
	"medixscan/internal/core/lexicon"
	perr "medixscan/internal/platform/errors"
	phttp "medixscan/internal/platform/net/http"
	reporthttp "medixscan/internal/services/reports/http"
	svc "medixscan/internal/services/reports/service"
)

func newAnalyzeMux(t *testing.T) stdhttp.Handler {
	t.Helper()
	pack, err := lexicon.Load()
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	s := svc.New(detector.New(pack, nil), corrector.New(pack))

	r := phttp.AdaptChi(chi.NewRouter())
	reporthttp.Register(r, s)
	return r.Mux()
}

func postAnalyze(t *testing.T, mux stdhttp.Handler, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/analyze", strings.NewReader(body)))
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v: %s", err, rec.Body.String())
	}
	return rec, env
}

func TestAnalyzeEndpoint(t *testing.T) {
	mux := newAnalyzeMux(t)

	rec, env := postAnalyze(t, mux, `{"text":"The diaphram appears elevated."}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T, want object", env.Data)
	}
	if got := data["corrected_text"]; got != "The diaphragm appears elevated." {
		t.Fatalf("corrected_text = %v", got)
	}
}

func TestAnalyzeEmptyTextEnvelope(t *testing.T) {
	mux := newAnalyzeMux(t)

	rec, env := postAnalyze(t, mux, `{"text":"   "}`)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if env.Code != perr.ErrorCodeEmptyInput {
		t.Fatalf("code = %v, want empty input", env.Code)
	}
	if env.Error == "" {
		t.Fatalf("expected an error message in the envelope")
	}
}

func TestAnalyzeOversizeTextRejected(t *testing.T) {
	mux := newAnalyzeMux(t)

	body := `{"text":"` + strings.Repeat("a", 100001) + `"}`
	rec, env := postAnalyze(t, mux, body)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if env.Code != perr.ErrorCodeValidation {
		t.Fatalf("code = %v, want validation", env.Code)
	}
}
