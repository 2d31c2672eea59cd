// Package http provides http transport for report analysis
package http

import (
	stdhttp "net/http"

	"medixscan/internal/modkit/httpkit"
	"medixscan/internal/services/reports/domain"
	svc "medixscan/internal/services/reports/service"
)

// Register mounts report endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.AnalyzeInput](r, "/analyze", h.analyze)
}

type handlers struct{ svc svc.Service }

func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}
