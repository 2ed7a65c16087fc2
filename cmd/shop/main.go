package main

import (
	"context"
	"os"

	"github.com/rl1809/storefront/internal/app"
	"github.com/rl1809/storefront/internal/config"
	"github.com/rl1809/storefront/internal/logging"
)

func main() {
	open := func(ctx context.Context, configPath string) (*app.App, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return app.Build(ctx, cfg, logging.New(os.Stderr, "warn", cfg.LogPretty))
	}

	root, closeApp := newRootCmd(open)
	err := root.ExecuteContext(context.Background())
	if cerr := closeApp(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		os.Exit(1)
	}
}
