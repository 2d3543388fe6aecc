// Package router arma el árbol de rutas del panel y declara la tabla de
// acceso por ruta. Toda ruta administrativa registrada acá DEBE tener una
// entrada en la Policy: New falla el arranque si falta alguna.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/comanda/internal/authz"
	"github.com/dropDatabas3/comanda/internal/domain"
	authctrl "github.com/dropDatabas3/comanda/internal/http/controllers/auth"
	catalogctrl "github.com/dropDatabas3/comanda/internal/http/controllers/catalog"
	floorctrl "github.com/dropDatabas3/comanda/internal/http/controllers/floor"
	healthctrl "github.com/dropDatabas3/comanda/internal/http/controllers/health"
	inventoryctrl "github.com/dropDatabas3/comanda/internal/http/controllers/inventory"
	ordersctrl "github.com/dropDatabas3/comanda/internal/http/controllers/orders"
	registersctrl "github.com/dropDatabas3/comanda/internal/http/controllers/registers"
	"github.com/dropDatabas3/comanda/internal/http/controllers/resources"
	staffctrl "github.com/dropDatabas3/comanda/internal/http/controllers/staff"
	mw "github.com/dropDatabas3/comanda/internal/http/middlewares"
	"github.com/dropDatabas3/comanda/internal/metrics"
	"github.com/dropDatabas3/comanda/internal/rate"
	"github.com/dropDatabas3/comanda/internal/session"
)

// Claves simbólicas de la tabla de acceso. El gate evalúa por clave, no por
// URL: varias URLs comparten la misma regla.
const (
	RouteAuthMe        = "auth.me"
	RouteMenuRead      = "menu.read"
	RouteMenuWrite     = "menu.write"
	RouteStaffManage   = "staff.manage"
	RouteInventoryRead = "inventory.read"
	RouteInventoryEdit = "inventory.write"
	RouteFloorRead     = "floor.read"
	RouteFloorWrite    = "floor.write"
	RouteOrdersRead    = "orders.read"
	RouteOrdersWrite   = "orders.write"
	RouteRegisters     = "registers"
	RouteCheckout      = "checkout"
)

// declaredRoutes es la lista contra la que se valida la Policy al arranque.
var declaredRoutes = []string{
	RouteAuthMe,
	RouteMenuRead, RouteMenuWrite,
	RouteStaffManage,
	RouteInventoryRead, RouteInventoryEdit,
	RouteFloorRead, RouteFloorWrite,
	RouteOrdersRead, RouteOrdersWrite,
	RouteRegisters, RouteCheckout,
}

// DefaultPolicy arma la tabla de acceso del panel.
func DefaultPolicy() *authz.Policy {
	p := authz.NewPolicy()
	p.AllowAny(RouteAuthMe)
	p.AllowAny(RouteMenuRead)
	p.Allow(RouteMenuWrite, domain.RoleAdmin, domain.RoleManager)
	p.Allow(RouteStaffManage, domain.RoleAdmin)
	p.Allow(RouteInventoryRead, domain.RoleAdmin, domain.RoleManager, domain.RoleChef)
	p.Allow(RouteInventoryEdit, domain.RoleAdmin, domain.RoleManager)
	p.AllowAny(RouteFloorRead)
	p.Allow(RouteFloorWrite, domain.RoleAdmin, domain.RoleManager)
	p.AllowAny(RouteOrdersRead)
	p.Allow(RouteOrdersWrite, domain.RoleAdmin, domain.RoleManager, domain.RoleWaiter, domain.RoleChef)
	p.Allow(RouteRegisters, domain.RoleAdmin, domain.RoleCashier)
	p.Allow(RouteCheckout, domain.RoleAdmin, domain.RoleCashier)
	return p
}

// Deps contiene todo lo que el router necesita para armar el árbol.
type Deps struct {
	Policy        *authz.Policy
	Authenticator *session.Authenticator
	LoginLimiter  *rate.Limiter

	Auth      *authctrl.Controller
	Health    *healthctrl.Controller
	Staff     *staffctrl.Controller
	Recipes   *catalogctrl.RecipesController
	Inventory *inventoryctrl.Controller
	Floor     *floorctrl.Controller
	Orders    *ordersctrl.Controller
	Registers *registersctrl.Controller

	Categories    *resources.Controller
	Subcategories *resources.Controller
	Ingredients   *resources.Controller
	Products      *resources.Controller

	MediaDir    string
	MetricsHTTP http.Handler
}

// New valida la Policy y arma el handler raíz.
func New(d Deps) (http.Handler, error) {
	if err := d.Policy.Validate(declaredRoutes); err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(mw.WithRequestID(), mw.WithLogging(), metrics.WithHTTP, mw.WithRecover())

	// ─── Público ───
	r.Get("/healthz", d.Health.Healthz)
	r.Get("/readyz", d.Health.Readyz)
	if d.MetricsHTTP != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHTTP)
	}
	if d.MediaDir != "" {
		fs := http.StripPrefix("/media/", http.FileServer(http.Dir(d.MediaDir)))
		r.Method(http.MethodGet, "/media/*", fs)
	}

	// ─── Panel ───
	withSession := mw.WithSession(d.Authenticator)
	gate := func(route string) mw.Middleware { return mw.RequireRoute(d.Policy, route) }

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(withSession)

		// Login: solo sin sesión, con rate limit por IP
		v1.Method(http.MethodPost, "/auth/login",
			mw.Chain(http.HandlerFunc(d.Auth.Login), mw.WithRateLimit(d.LoginLimiter), mw.RequireAnonymous()))
		v1.Method(http.MethodGet, "/auth/me",
			mw.ChainFunc(d.Auth.Me, gate(RouteAuthMe)))

		registerMenuRoutes(v1, d, gate)
		registerStaffRoutes(v1, d, gate)
		registerInventoryRoutes(v1, d, gate)
		registerFloorRoutes(v1, d, gate)
		registerOrderRoutes(v1, d, gate)
		registerRegisterRoutes(v1, d, gate)
	})

	return r, nil
}
