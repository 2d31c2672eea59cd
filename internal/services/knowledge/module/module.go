// Package module wires the knowledge base into the API using modkit
package module

import (
	"context"
	"net/http"

	modkit "medixscan/internal/modkit"
	"medixscan/internal/modkit/httpkit"
	"medixscan/internal/modkit/repokit"
	"medixscan/internal/platform/logger"
	str "medixscan/internal/platform/strings"
	"medixscan/internal/services/knowledge/domain"
	knowledgehttp "medixscan/internal/services/knowledge/http"
	knowledgerepo "medixscan/internal/services/knowledge/repo"
	knowledgesvc "medixscan/internal/services/knowledge/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc knowledgesvc.Service
}

// New constructs a knowledge module with the provided dependencies and options.
// The corpus is the embedded seed merged with any rows in medical_terms
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("knowledge"), modkit.WithPrefix("/knowledge")}, opts...)...)

	log := logger.Named("knowledge")

	terms, err := knowledgerepo.Static()
	if err != nil {
		log.Panic().Err(err).Msg("load knowledge corpus")
	}
	if deps.PG != nil {
		extra, err := repokit.MustBind(knowledgerepo.NewPG(), deps.PG).All(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("medical_terms unavailable, using embedded corpus only")
		} else {
			terms = append(terms, extra...)
		}
	}
	svc := knowledgesvc.New(terms)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Retriever: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		knowledgehttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Ports exposes the retriever for cross module wiring
type Ports struct {
	Retriever domain.RetrieverPort
}
