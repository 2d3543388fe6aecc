// Package dto define los contratos JSON del panel administrativo.
package dto

// LoginRequest es el body de POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse devuelve la credencial y la identidad resuelta.
type LoginResponse struct {
	Token       string `json:"token"`
	StaffID     string `json:"staff_id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// MeResponse es la respuesta del bootstrap de sesión (GET /v1/auth/me).
type MeResponse struct {
	StaffID     string `json:"staff_id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}
