package cli

import (
	"context"

	log "github.com/sirupsen/logrus"

	"infoco/internal/ai"
	"infoco/internal/api"
	"infoco/internal/config"
	"infoco/internal/logging"
	"infoco/internal/store"
	"infoco/internal/validation"
)

// Bootstrap builds the service a command runs against. The returned closer
// releases whatever the service holds open.
type Bootstrap func(ctx context.Context, cfg *config.Config, logger *log.Logger) (api.Service, func() error, error)

// DefaultBootstrap opens the configured storage, loads persisted records and
// attaches the Gemini analyst when an API key is configured.
func DefaultBootstrap(ctx context.Context, cfg *config.Config, logger *log.Logger) (api.Service, func() error, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}
	closer := func() error { return nil }
	if repo != nil {
		closer = repo.Close
		logging.Debugf("database: %s", cfg.GetDatabasePath())
	} else {
		logging.Debugln("storage: memory")
	}

	validator := validation.NewValidatorWithConfig(cfg)
	deps := api.Dependencies{
		Store:     store.New(),
		Repo:      repo,
		Validator: validator,
		Logger:    logger,
	}

	if cfg.AI.APIKey != "" {
		generator, err := ai.NewGeminiGenerator(ctx, ai.GeminiOptions{APIKey: cfg.AI.APIKey})
		if err != nil {
			_ = closer()
			return nil, nil, err
		}
		deps.Analyzer = ai.NewAnalyzer(generator, ai.Config{
			Model:       cfg.AI.Model,
			Timeout:     cfg.AI.Timeout,
			MaxAttempts: cfg.AI.MaxAttempts,
			RetryDelay:  cfg.AI.RetryDelay,
		}, ai.WithLogger(logger), ai.WithValidator(validator))
	}

	svc := api.New(deps)
	if err := svc.Load(ctx); err != nil {
		_ = closer()
		return nil, nil, err
	}
	return svc, closer, nil
}
