// Package services implementa la lógica de negocio del panel: cada service
// recibe sus dependencias por inyección y expone operaciones tipadas a los
// controllers. Este archivo es el composition root.
package services

import (
	"time"

	"github.com/dropDatabas3/comanda/internal/cache"
	"github.com/dropDatabas3/comanda/internal/email"
	jwtx "github.com/dropDatabas3/comanda/internal/jwt"
	"github.com/dropDatabas3/comanda/internal/store/core"
	"github.com/dropDatabas3/comanda/internal/upload"
)

// Deps contiene las dependencias base para crear los services.
type Deps struct {
	Repo     core.Repository
	Cache    cache.Cache
	CacheTTL time.Duration
	Issuer   *jwtx.Issuer
	Mailer   *email.Mailer
	Media    upload.Config
}

// Services agrupa todos los services del panel.
type Services struct {
	Auth      *AuthService
	Staff     *StaffService
	Catalog   *CatalogService
	Inventory *InventoryService
	Floor     *FloorService
	Orders    *OrderService
	Registers *RegisterService
}

// New crea el agregador de services. Único lugar donde se instancian.
func New(d Deps) *Services {
	return &Services{
		Auth:      &AuthService{repo: d.Repo, issuer: d.Issuer},
		Staff:     &StaffService{repo: d.Repo, mailer: d.Mailer, media: d.Media},
		Catalog:   &CatalogService{repo: d.Repo, cache: d.Cache, ttl: d.CacheTTL, media: d.Media},
		Inventory: &InventoryService{repo: d.Repo},
		Floor:     &FloorService{repo: d.Repo, cache: d.Cache, ttl: d.CacheTTL},
		Orders:    &OrderService{repo: d.Repo, cache: d.Cache},
		Registers: &RegisterService{repo: d.Repo, cache: d.Cache},
	}
}
