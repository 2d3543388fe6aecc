package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/comanda/internal/config"
	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/security/password"
	"github.com/dropDatabas3/comanda/internal/security/token"
	"github.com/dropDatabas3/comanda/internal/store/core"
	"github.com/dropDatabas3/comanda/internal/store/pg"
)

// newSeedCmd crea el primer administrador. Sin él no hay forma de entrar al
// panel: staff.manage exige rol admin y el alta de personal pasa por ahí.
func newSeedCmd(cfgPath *string) *cobra.Command {
	var email, name, plain string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea el administrador inicial si no existe",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email es requerido")
			}
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("seed requiere storage.driver=postgres (actual: %s)", cfg.Storage.Driver)
			}

			ctx := cmd.Context()
			st, err := pg.Connect(ctx, pg.Config{DSN: cfg.Storage.DSN})
			if err != nil {
				return err
			}
			defer st.Close()

			email = strings.ToLower(strings.TrimSpace(email))
			if existing, err := st.GetStaffByEmail(ctx, email); err == nil && existing != nil {
				fmt.Printf("ya existe un empleado con email %s, nada que hacer\n", email)
				return nil
			} else if err != nil && !errors.Is(err, core.ErrNotFound) {
				return err
			}

			generated := false
			if plain == "" {
				plain, err = token.NewOpaque(12)
				if err != nil {
					return err
				}
				generated = true
			}
			hash, err := password.Hash(password.Default, plain)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			admin := &domain.Staff{
				ID:           uuid.NewString(),
				Email:        email,
				DisplayName:  name,
				Role:         domain.RoleAdmin,
				PasswordHash: hash,
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if admin.DisplayName == "" {
				admin.DisplayName = "Administrador"
			}
			if err := st.CreateStaff(ctx, admin); err != nil {
				return err
			}

			fmt.Printf("administrador creado: %s (%s)\n", admin.Email, admin.ID)
			if generated {
				fmt.Printf("contraseña generada: %s\n", plain)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&name, "name", "", "nombre a mostrar")
	cmd.Flags().StringVar(&plain, "password", "", "contraseña inicial (se genera una si se omite)")
	return cmd
}
