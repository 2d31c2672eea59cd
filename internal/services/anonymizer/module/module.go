// Package module wires the anonymizer into the API using modkit
package module

import (
	"net/http"

	modkit "medixscan/internal/modkit"
	"medixscan/internal/modkit/httpkit"
	"medixscan/internal/modkit/repokit"
	str "medixscan/internal/platform/strings"
	"medixscan/internal/services/anonymizer/domain"
	anonhttp "medixscan/internal/services/anonymizer/http"
	anonrepo "medixscan/internal/services/anonymizer/repo"
	anonsvc "medixscan/internal/services/anonymizer/service"
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

	svc anonsvc.Service
}

// Ports exposes the anonymizer service for cross module wiring
type Ports struct {
	Anonymizer domain.ServicePort
}

// New constructs an anonymizer module. With postgres enabled the audit
// trail persists to anonymization_audit, otherwise it is held in memory
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("anonymizer"), modkit.WithPrefix("/anonymizer")}, opts...)...)

	var audit anonrepo.Repo
	if deps.PG != nil {
		audit = repokit.MustBind(anonrepo.NewPG(), deps.PG)
	} else {
		audit = anonrepo.NewMemory(1000)
	}
	svc := anonsvc.New(audit)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Anonymizer: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		anonhttp.Register(r, m.svc)
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
