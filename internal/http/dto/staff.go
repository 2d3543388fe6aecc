package dto

import (
	"time"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// CreateStaffRequest es el alta de un empleado.
type CreateStaffRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Password    string `json:"password,omitempty"` // vacío → se genera y se invita por mail
}

// UpdateStaffRequest actualiza datos del empleado. Campos nil no se tocan.
type UpdateStaffRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Role        *string `json:"role,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	Password    *string `json:"password,omitempty"`
}

// StaffResponse es la vista pública de un empleado (sin hash).
type StaffResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	ImageURL    string    `json:"image_url,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewStaffResponse arma la vista desde el dominio.
func NewStaffResponse(st domain.Staff, imageURL string) StaffResponse {
	return StaffResponse{
		ID:          st.ID,
		Email:       st.Email,
		DisplayName: st.DisplayName,
		Role:        string(st.Role),
		ImageURL:    imageURL,
		Active:      st.Active,
		CreatedAt:   st.CreatedAt,
	}
}
