// Package api provides the HTTP API for the application
package api

import (
	"medixscan/internal/platform/config"
	"medixscan/internal/platform/logger"
	phttp "medixscan/internal/platform/net/http"
	"medixscan/internal/platform/store"

	"medixscan/internal/modkit"
	"medixscan/internal/modkit/httpkit"
	"medixscan/internal/modkit/module"

	"medixscan/internal/services/enrich"

	anonymizermod "medixscan/internal/services/anonymizer/module"
	knowledgemod "medixscan/internal/services/knowledge/module"
	reportsmod "medixscan/internal/services/reports/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// the knowledge module owns the retriever port consumed by reports
	knowledge := knowledgemod.New(deps)
	retriever := module.MustPortsOf[knowledgemod.Ports](knowledge).Retriever

	reports := reportsmod.New(deps, reportsmod.Options{
		KB:       retriever,
		Enhancer: enrich.FromConfig(deps.Cfg),
	})

	mods := []module.Module{
		knowledge,
		reports,
		anonymizermod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
