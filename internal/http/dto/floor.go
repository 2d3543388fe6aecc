package dto

import (
	"time"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// CreateSectionRequest da de alta una zona del salón.
type CreateSectionRequest struct {
	Title string `json:"title"`
}

type SectionResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSectionResponse(s domain.Section) SectionResponse {
	return SectionResponse{ID: s.ID, Title: s.Title, CreatedAt: s.CreatedAt}
}

// CreateTableRequest da de alta una mesa en una zona.
type CreateTableRequest struct {
	SectionID string `json:"section_id"`
	Number    int    `json:"number"`
	Seats     int    `json:"seats"`
}

// UpdateTableRequest modifica una mesa. Campos nil no se tocan.
type UpdateTableRequest struct {
	Seats *int    `json:"seats,omitempty"`
	State *string `json:"state,omitempty"`
}

type TableResponse struct {
	ID        string    `json:"id"`
	SectionID string    `json:"section_id"`
	Number    int       `json:"number"`
	Seats     int       `json:"seats"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTableResponse(t domain.Table) TableResponse {
	return TableResponse{
		ID:        t.ID,
		SectionID: t.SectionID,
		Number:    t.Number,
		Seats:     t.Seats,
		State:     string(t.State),
		CreatedAt: t.CreatedAt,
	}
}
