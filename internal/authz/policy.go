// Package authz decide, por ruta, si una sesión puede ver un recurso
// administrativo. La tabla de acceso es estática y se valida al arranque:
// toda ruta administrativa debe declarar una allow-list no vacía o marcar
// explícitamente "cualquier rol autenticado".
package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dropDatabas3/comanda/internal/domain"
)

// Decision es el resultado de evaluar una ruta contra la sesión.
type Decision int

const (
	// DecisionChecking: la sesión todavía no está establecida (bootstrap en
	// curso). El caller debe esperar al flag de readiness, nunca un delay fijo.
	DecisionChecking Decision = iota
	DecisionAllowed
	DecisionDenied
)

func (d Decision) String() string {
	switch d {
	case DecisionAllowed:
		return "allowed"
	case DecisionDenied:
		return "denied"
	default:
		return "checking"
	}
}

// Policy es el mapeo estático ruta → roles permitidos.
// Una entrada con lista vacía significa "cualquier rol autenticado".
type Policy struct {
	rules map[string][]domain.Role
}

func NewPolicy() *Policy {
	return &Policy{rules: make(map[string][]domain.Role)}
}

// Allow declara la allow-list de una ruta. Llamar sin roles es un error de
// programación: usar AllowAny para el caso "cualquier autenticado".
func (p *Policy) Allow(route string, roles ...domain.Role) *Policy {
	if len(roles) == 0 {
		panic(fmt.Sprintf("authz: ruta %q declarada sin roles; usar AllowAny", route))
	}
	p.rules[route] = roles
	return p
}

// AllowAny declara que cualquier rol autenticado alcanza para la ruta.
func (p *Policy) AllowAny(route string) *Policy {
	p.rules[route] = []domain.Role{}
	return p
}

// Roles devuelve la allow-list declarada y si la ruta existe en la tabla.
func (p *Policy) Roles(route string) ([]domain.Role, bool) {
	r, ok := p.rules[route]
	return r, ok
}

// Validate verifica el invariante de arranque: cada ruta administrativa
// declarada en el router tiene una entrada en la tabla. Falla el arranque
// si falta alguna.
func (p *Policy) Validate(declared []string) error {
	var missing []string
	for _, route := range declared {
		if _, ok := p.rules[route]; !ok {
			missing = append(missing, route)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("authz: rutas sin política de acceso: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Evaluate decide el acceso de la sesión a la ruta.
//
// Transiciones:
//   - ready=false            → Checking (el bootstrap no terminó)
//   - sin sesión             → Denied
//   - ruta no declarada      → Denied (fail-closed; Validate debió atraparlo)
//   - allow-list vacía       → Allowed (cualquier autenticado)
//   - rol ∈ allow-list       → Allowed
//   - rol ∉ allow-list       → Denied
func (p *Policy) Evaluate(route string, sess domain.Session, ready bool) Decision {
	if !ready {
		return DecisionChecking
	}
	if !sess.IsAuthenticated() {
		return DecisionDenied
	}
	roles, ok := p.rules[route]
	if !ok {
		return DecisionDenied
	}
	if len(roles) == 0 {
		return DecisionAllowed
	}
	for _, r := range roles {
		if r == sess.Role {
			return DecisionAllowed
		}
	}
	return DecisionDenied
}

// EvaluateAnonymous es la regla inversa ("reverse protected"): la ruta solo
// se sirve si NO hay sesión (página de login). Binaria, sin allow-list.
func EvaluateAnonymous(sess domain.Session, ready bool) Decision {
	if !ready {
		return DecisionChecking
	}
	if sess.IsAuthenticated() {
		return DecisionDenied
	}
	return DecisionAllowed
}
