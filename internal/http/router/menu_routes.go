package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/comanda/internal/http/controllers/resources"
	mw "github.com/dropDatabas3/comanda/internal/http/middlewares"
)

// registerMenuRoutes monta los cuatro recursos del menú sobre el controller
// genérico, más las recetas por producto.
func registerMenuRoutes(r chi.Router, d Deps, gate func(string) mw.Middleware) {
	mount := func(path string, c *resources.Controller) {
		r.Method(http.MethodGet, path, mw.ChainFunc(c.HandleList, gate(RouteMenuRead)))
		r.Method(http.MethodPost, path, mw.ChainFunc(c.HandleCreate, gate(RouteMenuWrite)))
		r.Method(http.MethodPut, path+"/{id}", mw.ChainFunc(c.HandleUpdate, gate(RouteMenuWrite)))
		r.Method(http.MethodDelete, path+"/{id}", mw.ChainFunc(c.HandleDelete, gate(RouteMenuWrite)))
	}

	mount("/categories", d.Categories)
	mount("/subcategories", d.Subcategories)
	mount("/ingredients", d.Ingredients)
	mount("/products", d.Products)

	r.Method(http.MethodGet, "/products/{id}/recipe", mw.ChainFunc(d.Recipes.Get, gate(RouteMenuRead)))
	r.Method(http.MethodPut, "/products/{id}/recipe", mw.ChainFunc(d.Recipes.Put, gate(RouteMenuWrite)))
	r.Method(http.MethodDelete, "/products/{id}/recipe", mw.ChainFunc(d.Recipes.Delete, gate(RouteMenuWrite)))
}
