package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medixscan/internal/core/corrector"
	perr "medixscan/internal/platform/errors"
)

func completionServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if temp, ok := req["temperature"].(float64); !ok || temp != 0 {
			t.Errorf("temperature = %v, want 0", req["temperature"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		})
	}))
}

func TestEnhance(t *testing.T) {
	reply := `[{"error":"diaphram","suggestion":"diaphragm","recommendation":"Spelling correction",` +
		`"position":[4,12],"error_type":"spelling","confidence":0.99}]`
	srv := completionServer(t, "```json\n"+reply+"\n```")
	defer srv.Close()

	c := NewOpenAI("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	got, err := c.Enhance(context.Background(), "The diaphram appears elevated.", nil)
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if len(got) != 1 || got[0].Suggestion != "diaphragm" || got[0].Confidence != 0.99 {
		t.Fatalf("got %+v", got)
	}
}

func TestEnhance_MalformedReply(t *testing.T) {
	srv := completionServer(t, "I cannot help with that")
	defer srv.Close()

	c := NewOpenAI("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	_, err := c.Enhance(context.Background(), "text", nil)
	if !perr.IsCode(err, perr.ErrorCodeEnrichment) {
		t.Fatalf("err = %v, want enrichment code", err)
	}
}

func TestEnhance_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewOpenAI("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	_, err := c.Enhance(context.Background(), "text", nil)
	if !perr.IsCode(err, perr.ErrorCodeEnrichment) {
		t.Fatalf("err = %v, want enrichment code", err)
	}
}

func TestParseRecords_DropsBadSpans(t *testing.T) {
	reply := `[
{"error":"a","suggestion":"b","position":[0,1],"error_type":"spelling","confidence":0.9},
{"error":"c","suggestion":"d","position":[5,99],"error_type":"spelling","confidence":0.9},
{"error":"e","suggestion":"","position":[1,2],"error_type":"spelling","confidence":0.9}
]`
	got, err := parseRecords(reply, 10)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 1 || got[0].Error != "a" {
		t.Fatalf("got %+v", got)
	}
}

func TestNoop(t *testing.T) {
	n := Noop{}
	if n.Available() {
		t.Fatal("noop reports available")
	}
	recs := []corrector.Record{{Error: "x"}}
	got, err := n.Enhance(context.Background(), "text", recs)
	if err != nil || len(got) != 1 {
		t.Fatalf("got %+v err=%v", got, err)
	}
}
