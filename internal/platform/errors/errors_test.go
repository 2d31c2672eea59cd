package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeEmptyInput, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeEnrichment, http.StatusServiceUnavailable},
		{ErrorCodeRetrieval, http.StatusServiceUnavailable},
		{ErrorCodeStaleCorrection, http.StatusInternalServerError},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestDomainSugarConstructors(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{EmptyInputf("report text is required"), ErrorCodeEmptyInput},
		{Enrichmentf("model said no"), ErrorCodeEnrichment},
		{Retrievalf("knowledge base down"), ErrorCodeRetrieval},
		{StaleCorrectionf("span moved"), ErrorCodeStaleCorrection},
	}
	for _, c := range cases {
		if !IsCode(c.err, c.code) {
			t.Fatalf("IsCode(%v, %v) = false", c.err, c.code)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := Newf(ErrorCodeEmptyInput, "no text in %s", "request")
	if got := e1.Error(); got != "no text in request" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e2 := Wrapf(src, ErrorCodeRetrieval, "lookup failed")
	if want := "lookup failed: root"; e2.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e2.Error(), want)
	}
	if u := stderrs.Unwrap(e2); u == nil || u.Error() != "root" {
		t.Fatalf("Wrapf did not keep orig")
	}
	if CodeOf(e2) != ErrorCodeRetrieval {
		t.Fatalf("CodeOf(Wrapf) = %v", CodeOf(e2))
	}

	// CodeOf on foreign errors falls back to Unknown
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatalf("CodeOf(plain) != Unknown")
	}
}

func TestWireFrom(t *testing.T) {
	w := WireFrom(EmptyInputf("report text is required"))
	if w.Code != ErrorCodeEmptyInput || w.Message != "report text is required" {
		t.Fatalf("WireFrom = %+v", w)
	}

	w2 := WireFrom(stderrs.New("plain"))
	if w2.Code != ErrorCodeUnknown || w2.Message != "plain" {
		t.Fatalf("WireFrom(plain) = %+v", w2)
	}

	if w3 := WireFrom(nil); w3 != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", w3)
	}
}

func TestHTTPBundle(t *testing.T) {
	status, w := HTTP(EmptyInputf("report text is required"))
	if status != http.StatusBadRequest || w.Code != ErrorCodeEmptyInput {
		t.Fatalf("HTTP() = %d %+v", status, w)
	}
	if status, _ := HTTP(nil); status != http.StatusOK {
		t.Fatalf("HTTP(nil) = %d", status)
	}
}
