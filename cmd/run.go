package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wellnest/internal/app"
	"github.com/abhisek/wellnest/internal/auth"
	"github.com/abhisek/wellnest/internal/config"
	"github.com/abhisek/wellnest/internal/flow"
	"github.com/abhisek/wellnest/internal/llm"
	"github.com/abhisek/wellnest/internal/logging"
	"github.com/abhisek/wellnest/internal/profile"
	"github.com/abhisek/wellnest/internal/store"
	"github.com/abhisek/wellnest/internal/wellness"
)

// deps holds everything a command may need. Open it with openDeps and
// always Close it.
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *store.Store
	profiles *profile.Store
	auth     *auth.Manager

	provider    llm.Provider
	providerErr error
}

// openDeps loads configuration, opens the store and builds the shared
// services. A missing LLM configuration is not an error here; commands
// that need a model call requireProvider.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(logging.Config{File: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	d := &deps{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		profiles: profile.NewStore(profile.NewKVBackend(st.KV()), profile.WithLogger(logger.Named("profile"))),
	}

	authOpts := []auth.Option{auth.WithLogger(logger.Named("auth"))}
	if cfg.Supabase.Enabled() {
		authOpts = append(authOpts, auth.WithClient(auth.NewClient(cfg.Supabase.URL, cfg.Supabase.AnonKey)))
	}
	d.auth = auth.NewManager(st.KV(), authOpts...)

	d.provider, d.providerErr = llm.NewProvider(contextOf(cmd), cfg.ProviderConfig(), st.EventRepo(), logger.Named("llm"))
	return d, nil
}

// Close flushes the profile writer before the store goes away.
func (d *deps) Close() {
	d.profiles.Close()
	if err := d.store.Close(); err != nil {
		d.logger.Warn("close store", zap.Error(err))
	}
	_ = d.logger.Sync()
}

func (d *deps) requireProvider() (llm.Provider, error) {
	if d.providerErr != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", d.providerErr)
	}
	return d.provider, nil
}

// requireSession gates the assessment flows on a signed-in user.
func (d *deps) requireSession(ctx context.Context) (auth.Session, error) {
	s, err := d.auth.Require(ctx)
	if errors.Is(err, auth.ErrUnauthenticated) {
		return s, fmt.Errorf("%w: run `wellnest login` first", err)
	}
	return s, err
}

func (d *deps) flowDeps(p llm.Provider) wellness.Deps {
	return wellness.Deps{Provider: p, Sink: d.profiles, Logger: d.logger.Named("wellness")}
}

func (d *deps) flowOptions() []flow.Option {
	return []flow.Option{
		flow.WithFeedbackDelay(d.cfg.Flow.FeedbackDelay),
		flow.WithLogger(d.logger.Named("flow")),
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	opts := app.Options{
		Auth:          d.auth,
		Profiles:      d.profiles,
		FeedbackDelay: d.cfg.Flow.FeedbackDelay,
		Logger:        d.logger,
	}
	if d.providerErr != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", d.providerErr)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	} else {
		opts.Provider = d.provider
	}

	return app.Run(contextOf(cmd), opts)
}
