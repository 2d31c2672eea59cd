// Package http provides http transport for anonymization
package http

import (
	stdhttp "net/http"
	"strconv"

	"medixscan/internal/modkit/httpkit"
	"medixscan/internal/services/anonymizer/domain"
	svc "medixscan/internal/services/anonymizer/service"
)

// Register mounts anonymizer endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.TextInput](r, "/analyze", h.analyze)
	httpkit.PostJSON[domain.TextInput](r, "/anonymize", h.anonymize)
	httpkit.PostJSON[domain.TextInput](r, "/insights", h.insights)
	httpkit.Get(r, "/audit", h.audit)
}

type handlers struct{ svc svc.Service }

func (h *handlers) analyze(r *stdhttp.Request, in domain.TextInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

func (h *handlers) anonymize(r *stdhttp.Request, in domain.TextInput) (any, error) {
	return h.svc.Anonymize(r.Context(), in)
}

func (h *handlers) insights(r *stdhttp.Request, in domain.TextInput) (any, error) {
	return h.svc.Insights(r.Context(), in)
}

func (h *handlers) audit(r *stdhttp.Request) (any, error) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return h.svc.Audit(r.Context(), limit)
}
