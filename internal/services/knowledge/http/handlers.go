// Package http provides http transport for the knowledge base
package http

import (
	stdhttp "net/http"

	"medixscan/internal/modkit/httpkit"
	"medixscan/internal/services/knowledge/domain"
	svc "medixscan/internal/services/knowledge/service"
)

// Register mounts knowledge base endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.LookupInput](r, "/lookup", h.lookup)
}

type handlers struct{ svc svc.Service }

func (h *handlers) lookup(r *stdhttp.Request, in domain.LookupInput) (any, error) {
	return h.svc.Lookup(r.Context(), in)
}
