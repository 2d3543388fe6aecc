package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/http/dto"
	jwtx "github.com/dropDatabas3/comanda/internal/jwt"
	"github.com/dropDatabas3/comanda/internal/listsync"
	"github.com/dropDatabas3/comanda/internal/session"
)

// apiClient habla con el panel usando la credencial de sesión persistida.
type apiClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func (c *apiClient) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

// remoteIdentity valida la credencial contra GET /v1/auth/me: el cliente no
// conoce el secreto de firma, la única verdad es el servidor.
type remoteIdentity struct {
	cl *apiClient

	mu   sync.Mutex
	last *dto.MeResponse
}

func (r *remoteIdentity) Verify(raw string) (*jwtx.SessionClaims, error) {
	r.cl.Token = raw
	status, body, err := r.cl.do(context.Background(), http.MethodGet, "/v1/auth/me", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("sesión rechazada (status=%d)", status)
	}
	var me dto.MeResponse
	if err := json.Unmarshal(body, &me); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.last = &me
	r.mu.Unlock()

	return &jwtx.SessionClaims{
		Role:             me.Role,
		DisplayName:      me.DisplayName,
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: me.StaffID},
	}, nil
}

func (r *remoteIdentity) GetStaff(ctx context.Context, id string) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil || r.last.StaffID != id {
		return nil, fmt.Errorf("identidad no resuelta para %s", id)
	}
	return &domain.Staff{
		ID:          r.last.StaffID,
		DisplayName: r.last.DisplayName,
		Role:        domain.Role(r.last.Role),
		Active:      true,
	}, nil
}

func newAdminCmd() *cobra.Command {
	baseURL := envOr("COMANDA_URL", "http://localhost:8080")
	credsPath := envOr("COMANDA_CREDENTIALS", defaultCredsPath())

	cl := &apiClient{BaseURL: baseURL, HTTP: &http.Client{Timeout: 30 * time.Second}}
	identity := &remoteIdentity{cl: cl}
	mgr := &session.Manager{
		Creds: session.NewFileStore(credsPath),
		Auth:  &session.Authenticator{Verifier: identity, Staff: identity},
	}

	admin := &cobra.Command{
		Use:   "admin",
		Short: "Cliente de administración por terminal",
	}
	admin.PersistentFlags().StringVar(&cl.BaseURL, "url", baseURL, "URL base del panel (env COMANDA_URL)")

	// bootstrap corre antes de cualquier comando autenticado: sin credencial
	// persistida no hay llamada de red, con credencial rota se limpia todo.
	bootstrap := func(ctx context.Context) (domain.Session, error) {
		sess, err := mgr.Bootstrap(ctx)
		if err != nil {
			return domain.Session{}, fmt.Errorf("no hay sesión activa: ingresá con `comanda admin login`")
		}
		cl.Token = sess.Token
		return sess, nil
	}

	admin.AddCommand(newLoginCmd(cl, mgr))
	admin.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión local",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr.Logout()
			fmt.Println("sesión cerrada")
			return nil
		},
	})
	admin.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Muestra la identidad de la sesión persistida",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s) rol=%s\n", sess.DisplayName, sess.StaffID, sess.Role)
			return nil
		},
	})
	admin.AddCommand(newStaffCmd(cl, mgr, bootstrap))

	return admin
}

func newLoginCmd(cl *apiClient, mgr *session.Manager) *cobra.Command {
	var email, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión y persiste la credencial",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || pass == "" {
				return fmt.Errorf("--email y --password son requeridos")
			}
			body, _ := json.Marshal(dto.LoginRequest{Email: email, Password: pass})
			status, resp, err := cl.do(cmd.Context(), http.MethodPost, "/v1/auth/login", body)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("login falló: status=%d body=%s", status, string(resp))
			}
			var lr dto.LoginResponse
			if err := json.Unmarshal(resp, &lr); err != nil {
				return err
			}
			sess := domain.Session{
				StaffID:     lr.StaffID,
				Token:       lr.Token,
				Role:        domain.Role(lr.Role),
				DisplayName: lr.DisplayName,
			}
			if err := mgr.Login(sess); err != nil {
				return err
			}
			cl.Token = lr.Token
			fmt.Printf("sesión iniciada como %s (rol=%s)\n", lr.DisplayName, lr.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del empleado")
	cmd.Flags().StringVar(&pass, "password", "", "contraseña")
	return cmd
}

func newStaffCmd(cl *apiClient, mgr *session.Manager, bootstrap func(context.Context) (domain.Session, error)) *cobra.Command {
	staff := &cobra.Command{
		Use:   "staff",
		Short: "Operaciones sobre el personal",
	}

	staff.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Lista el personal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := bootstrap(cmd.Context()); err != nil {
				return err
			}
			mirror, err := fetchStaff(cmd.Context(), cl)
			if err != nil {
				return err
			}
			for _, st := range mirror.Items() {
				state := "activo"
				if !st.Active {
					state = "inactivo"
				}
				fmt.Printf("%s  %-25s %-10s %s\n", st.ID, st.Email, st.Role, state)
			}
			if mirror.Empty() {
				fmt.Println("(sin personal)")
			}
			return nil
		},
	})

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Elimina un empleado (confirma en el servidor antes de tocar la lista)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deleteID == "" {
				return fmt.Errorf("--id es requerido")
			}
			if _, err := bootstrap(cmd.Context()); err != nil {
				return err
			}
			mirror, err := fetchStaff(cmd.Context(), cl)
			if err != nil {
				return err
			}

			err = mirror.Delete(cmd.Context(), deleteID, func(ctx context.Context) error {
				status, body, err := cl.do(ctx, http.MethodDelete, "/v1/staff/"+deleteID, nil)
				if err != nil {
					return err
				}
				if status == http.StatusUnauthorized {
					// La credencial murió entre el bootstrap y la operación
					mgr.Logout()
					return fmt.Errorf("sesión expirada, volvé a ingresar")
				}
				if status != http.StatusNoContent {
					return fmt.Errorf("borrado rechazado: status=%d body=%s", status, string(body))
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Printf("empleado eliminado, quedan %d en la lista\n", mirror.Len())
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "id del empleado a eliminar")
	staff.AddCommand(deleteCmd)

	return staff
}

// fetchStaff llena el espejo local con el estado actual del servidor.
func fetchStaff(ctx context.Context, cl *apiClient) (*listsync.Mirror[dto.StaffResponse], error) {
	status, body, err := cl.do(ctx, http.MethodGet, "/v1/staff", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("listado falló: status=%d body=%s", status, string(body))
	}
	var items []dto.StaffResponse
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	mirror := listsync.New(func(s dto.StaffResponse) string { return s.ID })
	mirror.Seed(items)
	return mirror, nil
}

func defaultCredsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".comanda-credentials.json"
	}
	return filepath.Join(home, ".config", "comanda", "credentials.json")
}
