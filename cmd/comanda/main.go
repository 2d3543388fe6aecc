// comanda es el binario único del servicio: servidor HTTP, migraciones,
// seed inicial y un cliente de administración por terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env opcional: las variables del sistema tienen prioridad
	_ = godotenv.Load()

	var cfgPath string

	root := &cobra.Command{
		Use:           "comanda",
		Short:         "Panel administrativo del restaurante",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", envOr("COMANDA_CONFIG", "config.yaml"), "ruta del archivo de configuración")

	root.AddCommand(newServeCmd(&cfgPath))
	root.AddCommand(newMigrateCmd(&cfgPath))
	root.AddCommand(newSeedCmd(&cfgPath))
	root.AddCommand(newAdminCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
