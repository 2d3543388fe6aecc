// Package email envía correos transaccionales (invitación de personal).
// Sin host SMTP configurado el mailer queda deshabilitado y las operaciones
// son no-op: el alta de personal nunca falla por el correo.
package email

import (
	"fmt"

	gomail "github.com/go-mail/mail"

	"github.com/dropDatabas3/comanda/internal/observability/logger"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type Mailer struct {
	cfg Config
}

func NewMailer(cfg Config) *Mailer { return &Mailer{cfg: cfg} }

// Enabled indica si hay SMTP configurado.
func (m *Mailer) Enabled() bool { return m != nil && m.cfg.Host != "" }

// SendStaffInvite envía la invitación con la contraseña temporal.
func (m *Mailer) SendStaffInvite(to, displayName, tempPassword string) error {
	if !m.Enabled() {
		logger.L().Debug("mailer deshabilitado, invitación omitida", logger.String("to", to))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Tu acceso al panel de administración")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hola %s,\n\nTe creamos un usuario en el panel del restaurante.\n"+
			"Email: %s\nContraseña temporal: %s\n\nCambiala al ingresar.\n",
		displayName, to, tempPassword,
	))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	return d.DialAndSend(msg)
}
