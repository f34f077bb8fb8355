// Package cli wires the clientform commands: configuration, logging, the
// form catalog, the entity database and the interactive runner.
package cli

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/goliatone/go-clientform/internal/backend"
	"github.com/goliatone/go-clientform/internal/config"
	"github.com/goliatone/go-clientform/internal/logging"
	"github.com/goliatone/go-clientform/pkg/form"
	"github.com/goliatone/go-clientform/pkg/renderers/tui"
	"github.com/goliatone/go-clientform/pkg/schema"
	"github.com/goliatone/go-clientform/pkg/session"
	"github.com/goliatone/go-clientform/pkg/store"
)

// Env carries process-level inputs shared by every command. Tests replace
// Driver to script prompts.
type Env struct {
	ConfigPath string
	Driver     tui.PromptDriver
	Registerer prometheus.Registerer
}

type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	catalog *schema.Catalog
	db      *backend.SQLite
	metrics *session.Metrics
}

func (e *Env) open() (*runtime, error) {
	cfg, err := config.Load(e.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	reg := e.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := session.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	db, err := backend.Open(cfg.Database.DSN, backend.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, catalog: catalog, db: db, metrics: metrics}, nil
}

func loadCatalog(cfg *config.Config) (*schema.Catalog, error) {
	var defs fs.FS
	if dir := strings.TrimSpace(cfg.Forms.Dir); dir != "" {
		defs = os.DirFS(dir)
	}
	return schema.LoadFS(defs)
}

func (r *runtime) Close() {
	if r.db != nil {
		r.db.Close()
	}
	_ = r.logger.Sync()
}

func (r *runtime) store() *store.Store {
	return store.New(store.WithDispatcher(r.db), store.WithLogger(r.logger))
}

// sessionOptions returns the options every CLI session shares. Sanitising
// happens on edits so the stored entity is exactly the validated state.
func (r *runtime) sessionOptions(extra ...session.Option) []session.Option {
	opts := []session.Option{
		session.WithLogger(r.logger),
		session.WithMetrics(r.metrics),
	}
	if r.cfg.Input.Sanitize {
		opts = append(opts, session.WithInputFilter(backend.NewSanitizer().Sanitize))
	}
	return append(opts, extra...)
}

func (r *runtime) definition(name string) (form.Definition, error) {
	id := resolveFormID(name)
	def, ok := r.catalog.Definition(id)
	if !ok {
		return form.Definition{}, fmt.Errorf("unknown form %q (known: %s)", name, strings.Join(r.catalog.IDs(), ", "))
	}
	return def, nil
}

func (r *runtime) definitionForKind(kind string) (form.Definition, error) {
	for _, id := range r.catalog.IDs() {
		def, _ := r.catalog.Definition(id)
		if def.Entity == kind {
			return def, nil
		}
	}
	return form.Definition{}, fmt.Errorf("no form creates %q entities", kind)
}

func (e *Env) runner(out io.Writer) *tui.Runner {
	if e.Driver != nil {
		return tui.NewRunner(tui.WithDriver(e.Driver))
	}
	return tui.NewWriterRunner(out)
}

// resolveFormID maps the short names "client" and "job" to their form ids.
func resolveFormID(name string) string {
	switch strings.TrimSpace(name) {
	case form.EntityClient:
		return form.ClientFormID
	case form.EntityJob:
		return form.JobFormID
	default:
		return strings.TrimSpace(name)
	}
}

func updateAction(def form.Definition) string {
	if i := strings.LastIndex(def.Action, "/"); i > 0 {
		return def.Action[:i] + "/update"
	}
	return def.Entity + "/update"
}
