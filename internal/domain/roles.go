package domain

import "strings"

// Role es el rol de un empleado dentro del restaurante.
// Determina qué rutas administrativas puede ver (ver internal/authz).
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
	RoleWaiter  Role = "waiter"
	RoleChef    Role = "chef"
)

// AllRoles lista los roles conocidos, en orden de privilegio descendente.
var AllRoles = []Role{RoleAdmin, RoleManager, RoleCashier, RoleWaiter, RoleChef}

// ParseRole normaliza y valida un rol. Devuelve ok=false si no es conocido.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string { return string(r) }
