// Package module wires report analysis into the API using modkit
package module

import (
	"net/http"

	modkit "medixscan/internal/modkit"
	"medixscan/internal/modkit/httpkit"
	"medixscan/internal/platform/logger"
	str "medixscan/internal/platform/strings"

	"medixscan/internal/core/corrector"
	"medixscan/internal/core/detector"
	"medixscan/internal/core/lexicon"
	"medixscan/internal/services/reports/domain"
	reportshttp "medixscan/internal/services/reports/http"
	reportssvc "medixscan/internal/services/reports/service"
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

	svc reportssvc.Service
}

// Ports exposes the analysis service for cross module wiring
type Ports struct {
	Analyzer domain.ServicePort
}

// Options carries the cross module seams the pipeline needs
type Options struct {
	KB       detector.Lookup
	Enhancer domain.EnhancerPort
}

// New constructs a reports module with the provided dependencies and options
func New(deps modkit.Deps, opt Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("reports"), modkit.WithPrefix("/reports")}, opts...)...)

	pack, err := lexicon.Load()
	if err != nil {
		logger.Named("reports").Panic().Err(err).Msg("load lexicon")
	}

	svcOpts := []reportssvc.Option{}
	if opt.Enhancer != nil {
		svcOpts = append(svcOpts, reportssvc.WithEnhancer(opt.Enhancer))
	}
	svc := reportssvc.New(detector.New(pack, opt.KB), corrector.New(pack), svcOpts...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Analyzer: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		reportshttp.Register(r, m.svc)
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
