package app

import (
	"context"
	"fmt"

	"github.com/abhisek/hintz/internal/analysis"
	"github.com/abhisek/hintz/internal/bench"
	"github.com/abhisek/hintz/internal/hintgen"
	"github.com/abhisek/hintz/internal/judge"
	"github.com/abhisek/hintz/internal/llm"
	"github.com/abhisek/hintz/internal/store"
	"github.com/abhisek/hintz/internal/strategy"
	"github.com/abhisek/hintz/internal/tutor"
)

// App bundles the assembled tutoring pipeline shared by the CLI commands.
type App struct {
	Config llm.Config

	Analysis  *analysis.Service
	Selector  *strategy.Selector
	Generator *hintgen.Generator // base model
	FineTuned *hintgen.Generator // nil without the fine-tuned handle
	Judge     *judge.Judge

	Controller          *tutor.Controller // agent loop on the base model
	FineTunedController *tutor.Controller // nil without the fine-tuned handle

	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo
}

// Options carries pre-built dependencies into New. Providers are injected
// so tests can assemble the pipeline on mocks.
type Options struct {
	Config llm.Config

	BaseProvider      llm.Provider
	FineTunedProvider llm.Provider
	JudgeProvider     llm.Provider

	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo

	// AcceptThreshold is the minimum judge score that ends a session.
	// Zero means the tutor default.
	AcceptThreshold int
}

// New assembles the pipeline. BaseProvider and JudgeProvider are required;
// everything else is optional.
func New(opts Options) (*App, error) {
	if opts.BaseProvider == nil {
		return nil, fmt.Errorf("base provider is required")
	}
	if opts.JudgeProvider == nil {
		return nil, fmt.Errorf("judge provider is required")
	}

	a := &App{
		Config:       opts.Config,
		Analysis:     analysis.NewService(opts.BaseProvider),
		Selector:     strategy.NewSelector(),
		Generator:    hintgen.New(opts.BaseProvider, hintgen.DefaultConfig()),
		Judge:        judge.New(opts.JudgeProvider, judge.DefaultConfig()),
		EventRepo:    opts.EventRepo,
		SnapshotRepo: opts.SnapshotRepo,
	}

	tcfg := tutor.Config{AcceptThreshold: opts.AcceptThreshold}
	a.Controller = tutor.NewController(a.Analysis, a.Selector, a.Generator, a.Judge, opts.EventRepo, tcfg)

	if opts.FineTunedProvider != nil {
		a.FineTuned = hintgen.New(opts.FineTunedProvider, hintgen.DefaultConfig())
		a.FineTunedController = tutor.NewController(a.Analysis, a.Selector, a.FineTuned, a.Judge, opts.EventRepo, tcfg)
	}

	return a, nil
}

// FromEnv resolves provider configuration from the environment and
// assembles the pipeline. A nil store runs the pipeline without event
// persistence. acceptThreshold zero means the tutor default.
func FromEnv(ctx context.Context, st *store.Store, acceptThreshold int) (*App, error) {
	cfg, err := llm.ResolveConfig()
	if err != nil {
		return nil, err
	}

	var eventRepo store.EventRepo
	var snapRepo store.SnapshotRepo
	if st != nil {
		eventRepo = st.EventRepo()
		snapRepo = st.SnapshotRepo()
	}

	base, err := llm.NewProvider(ctx, cfg, eventRepo)
	if err != nil {
		return nil, fmt.Errorf("initializing provider: %w", err)
	}

	judgeProv, err := llm.NewJudgeProvider(ctx, cfg, eventRepo)
	if err != nil {
		return nil, err
	}

	opts := Options{
		Config:          cfg,
		BaseProvider:    base,
		JudgeProvider:   judgeProv,
		EventRepo:       eventRepo,
		SnapshotRepo:    snapRepo,
		AcceptThreshold: acceptThreshold,
	}

	if cfg.HasFineTuned() {
		ft, err := llm.NewFineTunedProvider(cfg, eventRepo)
		if err != nil {
			return nil, err
		}
		opts.FineTunedProvider = ft
	}

	return New(opts)
}

// BenchRunner builds a benchmark runner over the assembled pipeline.
// Fine-tuned approaches are offered only when the fine-tuned handle is
// configured.
func (a *App) BenchRunner(cfg bench.Config) (*bench.Runner, error) {
	var fineTuned bench.HintSource
	var fineTunedAgent bench.Agent
	if a.FineTuned != nil {
		fineTuned = a.FineTuned
		fineTunedAgent = a.FineTunedController
	}
	return bench.NewRunner(a.Judge, a.Generator, fineTuned, a.Controller, fineTunedAgent, cfg)
}
