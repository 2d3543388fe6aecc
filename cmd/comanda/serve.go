package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/comanda/internal/config"
	"github.com/dropDatabas3/comanda/internal/http/server"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
)

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP del panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       cfg.Log.Level,
				ServiceName: cfg.App.Name,
				Version:     cfg.App.Version,
			})
			defer logger.Sync()

			ctx := context.Background()
			handler, cleanup, err := server.Build(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			return server.Run(ctx, cfg, handler)
		},
	}
}
