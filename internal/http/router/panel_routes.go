package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/comanda/internal/http/middlewares"
)

func registerStaffRoutes(r chi.Router, d Deps, gate func(string) mw.Middleware) {
	g := gate(RouteStaffManage)
	r.Method(http.MethodGet, "/staff", mw.ChainFunc(d.Staff.List, g))
	r.Method(http.MethodPost, "/staff", mw.ChainFunc(d.Staff.Create, g))
	r.Method(http.MethodPatch, "/staff/{id}", mw.ChainFunc(d.Staff.Update, g))
	r.Method(http.MethodDelete, "/staff/{id}", mw.ChainFunc(d.Staff.Delete, g))
}

func registerInventoryRoutes(r chi.Router, d Deps, gate func(string) mw.Middleware) {
	r.Method(http.MethodGet, "/inventory/batches", mw.ChainFunc(d.Inventory.ListBatches, gate(RouteInventoryRead)))
	r.Method(http.MethodGet, "/inventory/stock", mw.ChainFunc(d.Inventory.Stock, gate(RouteInventoryRead)))
	r.Method(http.MethodPost, "/inventory/batches", mw.ChainFunc(d.Inventory.CreateBatch, gate(RouteInventoryEdit)))
	r.Method(http.MethodDelete, "/inventory/batches/{id}", mw.ChainFunc(d.Inventory.DeleteBatch, gate(RouteInventoryEdit)))
}

func registerFloorRoutes(r chi.Router, d Deps, gate func(string) mw.Middleware) {
	r.Method(http.MethodGet, "/sections", mw.ChainFunc(d.Floor.ListSections, gate(RouteFloorRead)))
	r.Method(http.MethodPost, "/sections", mw.ChainFunc(d.Floor.CreateSection, gate(RouteFloorWrite)))
	r.Method(http.MethodDelete, "/sections/{id}", mw.ChainFunc(d.Floor.DeleteSection, gate(RouteFloorWrite)))

	r.Method(http.MethodGet, "/tables", mw.ChainFunc(d.Floor.ListTables, gate(RouteFloorRead)))
	r.Method(http.MethodPost, "/tables", mw.ChainFunc(d.Floor.CreateTable, gate(RouteFloorWrite)))
	r.Method(http.MethodPatch, "/tables/{id}", mw.ChainFunc(d.Floor.UpdateTable, gate(RouteFloorWrite)))
	r.Method(http.MethodDelete, "/tables/{id}", mw.ChainFunc(d.Floor.DeleteTable, gate(RouteFloorWrite)))
}

func registerOrderRoutes(r chi.Router, d Deps, gate func(string) mw.Middleware) {
	r.Method(http.MethodGet, "/orders", mw.ChainFunc(d.Orders.List, gate(RouteOrdersRead)))
	r.Method(http.MethodGet, "/orders/{id}", mw.ChainFunc(d.Orders.Get, gate(RouteOrdersRead)))
	r.Method(http.MethodPost, "/orders", mw.ChainFunc(d.Orders.Open, gate(RouteOrdersWrite)))
	r.Method(http.MethodPost, "/orders/{id}/items", mw.ChainFunc(d.Orders.AddItems, gate(RouteOrdersWrite)))
	r.Method(http.MethodDelete, "/orders/{id}/items/{itemID}", mw.ChainFunc(d.Orders.RemoveItem, gate(RouteOrdersWrite)))
	r.Method(http.MethodPost, "/orders/{id}/status", mw.ChainFunc(d.Orders.Transition, gate(RouteOrdersWrite)))
}

func registerRegisterRoutes(r chi.Router, d Deps, gate func(string) mw.Middleware) {
	g := gate(RouteRegisters)
	r.Method(http.MethodGet, "/registers", mw.ChainFunc(d.Registers.List, g))
	r.Method(http.MethodPost, "/registers", mw.ChainFunc(d.Registers.Open, g))
	r.Method(http.MethodPost, "/registers/{id}/close", mw.ChainFunc(d.Registers.Close, g))
	r.Method(http.MethodGet, "/registers/{id}/payments", mw.ChainFunc(d.Registers.Payments, g))

	r.Method(http.MethodPost, "/checkout", mw.ChainFunc(d.Registers.Checkout, gate(RouteCheckout)))
}
