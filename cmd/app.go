package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/consensus-solver/agent/agents/orchestrator"
	"github.com/tanpawarit/consensus-solver/agent/agents/roles"
	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	llmx "github.com/tanpawarit/consensus-solver/agent/llm"
	configx "github.com/tanpawarit/consensus-solver/pkg/config"
	logx "github.com/tanpawarit/consensus-solver/pkg/logger"
)

type AppConfig struct {
	Addr             string        `envconfig:"ADDR" default:":8001"`
	RunTimeout       time.Duration `split_words:"true" default:"120s"`
	CallTimeout      time.Duration `split_words:"true" default:"45s"`
	ParallelAnalysis bool          `split_words:"true" default:"true"`
	SharedHistory    bool          `split_words:"true" default:"false"`
	HistoryCap       int           `split_words:"true" default:"256"`
}

type app struct {
	cfg    *AppConfig
	models contractx.Registry
	solver *orchestrator.Orchestrator
}

func loadConfig() (*AppConfig, error) {
	logCfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		return nil, err
	}
	logx.Init(*logCfg)

	return configx.New[AppConfig]("CONSENSUS")
}

// newApp loads configuration and wires every provider client. It fails when
// any provider the pipeline needs is not configured.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	llmCfg, err := configx.New[llmx.Config]("")
	if err != nil {
		return nil, err
	}
	if err := llmCfg.Validate(); err != nil {
		return nil, err
	}

	models, err := roles.NewRegistry(ctx, *llmCfg, cfg.CallTimeout)
	if err != nil {
		return nil, fmt.Errorf("build agents: %w", err)
	}

	solver, err := orchestrator.New(models, orchestrator.Config{
		ParallelAnalysis: cfg.ParallelAnalysis,
		SharedHistory:    cfg.SharedHistory,
		HistoryCap:       cfg.HistoryCap,
		RunTimeout:       cfg.RunTimeout,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Bool("parallel_analysis", cfg.ParallelAnalysis).
		Bool("shared_history", cfg.SharedHistory).
		Dur("run_timeout", cfg.RunTimeout).
		Dur("call_timeout", cfg.CallTimeout).
		Msg("solver ready")

	return &app{cfg: cfg, models: models, solver: solver}, nil
}
