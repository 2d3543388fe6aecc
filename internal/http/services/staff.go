package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/comanda/internal/domain"
	"github.com/dropDatabas3/comanda/internal/email"
	"github.com/dropDatabas3/comanda/internal/observability/logger"
	"github.com/dropDatabas3/comanda/internal/security/password"
	"github.com/dropDatabas3/comanda/internal/security/token"
	"github.com/dropDatabas3/comanda/internal/store/core"
	"github.com/dropDatabas3/comanda/internal/upload"
)

var ErrInvalidRole = errors.New("staff: rol inválido")

// StaffService administra las cuentas de empleados.
type StaffService struct {
	repo   core.Repository
	mailer *email.Mailer
	media  upload.Config
}

func (s *StaffService) List(ctx context.Context) ([]domain.Staff, error) {
	return s.repo.ListStaff(ctx)
}

func (s *StaffService) Get(ctx context.Context, id string) (*domain.Staff, error) {
	return s.repo.GetStaff(ctx, id)
}

// Create da de alta un empleado. Sin password explícito se genera uno
// temporal y se envía por mail (si hay SMTP configurado).
func (s *StaffService) Create(ctx context.Context, emailAddr, displayName, roleStr, plain string) (*domain.Staff, error) {
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return nil, ErrInvalidRole
	}
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))

	invited := false
	if plain == "" {
		generated, err := token.NewOpaque(12)
		if err != nil {
			return nil, err
		}
		plain = generated
		invited = true
	}
	hash, err := password.Hash(password.Default, plain)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	st := &domain.Staff{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		DisplayName:  displayName,
		Role:         role,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateStaff(ctx, st); err != nil {
		return nil, err
	}

	if invited {
		if err := s.mailer.SendStaffInvite(emailAddr, displayName, plain); err != nil {
			// El alta ya está: el mail fallido se loguea y se sigue
			logger.From(ctx).Warn("no se pudo enviar la invitación",
				logger.StaffID(st.ID), logger.Err(err))
		}
	}
	return st, nil
}

// UpdateInput agrupa los cambios opcionales de un empleado.
type UpdateInput struct {
	DisplayName *string
	Role        *string
	Active      *bool
	Password    *string
}

func (s *StaffService) Update(ctx context.Context, id string, in UpdateInput) (*domain.Staff, error) {
	st, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.DisplayName != nil {
		st.DisplayName = *in.DisplayName
	}
	if in.Role != nil {
		role, ok := domain.ParseRole(*in.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		st.Role = role
	}
	if in.Active != nil {
		st.Active = *in.Active
		if !st.Active {
			now := time.Now().UTC()
			st.DisabledAt = &now
		} else {
			st.DisabledAt = nil
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := password.Hash(password.Default, *in.Password)
		if err != nil {
			return nil, err
		}
		st.PasswordHash = hash
	}
	st.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateStaff(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StaffService) Delete(ctx context.Context, id string) error {
	st, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteStaff(ctx, id); err != nil {
		return err
	}
	if st.ImagePath != "" {
		_ = s.media.Remove(st.ImagePath)
	}
	return nil
}

// ImageURL arma la URL pública de la imagen del empleado.
func (s *StaffService) ImageURL(st domain.Staff) string {
	return s.media.URL(st.ImagePath)
}
