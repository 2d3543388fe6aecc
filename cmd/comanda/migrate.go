package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/comanda/internal/config"
	"github.com/dropDatabas3/comanda/internal/store/pg"
	migrations "github.com/dropDatabas3/comanda/migrations/postgres"
)

func newMigrateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes del esquema PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("migrate requiere storage.driver=postgres (actual: %s)", cfg.Storage.Driver)
			}

			ctx := cmd.Context()
			st, err := pg.Connect(ctx, pg.Config{DSN: cfg.Storage.DSN})
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := migrations.Apply(ctx, st.Pool())
			if err != nil {
				return err
			}
			fmt.Printf("migraciones aplicadas: %d\n", n)
			return nil
		},
	}
}
