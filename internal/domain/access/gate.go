// Package access concentra las decisiones que dependen del rol y la identidad:
// el gate de rutas y el filtro de visibilidad de flow cards. Todo es puro (sin I/O).
package access

import "github.com/jhoicas/axion-crm/internal/domain/entity"

// Rutas de inicio por rol.
const (
	HomeDefault    = "/"
	HomeSeller     = "/vendedor"
	HomeProduction = "/producao"
	LoginPath      = "/login"
)

// Identity estado de la sesión tal como lo ve un gate.
// Mientras Loading sea true no se inspecciona User.
type Identity struct {
	Loading bool
	User    *entity.Principal
}

// Outcome tipo de decisión del gate.
type Outcome int

const (
	// Suspend no renderizar ni redirigir; reevaluar cuando termine la carga.
	Suspend Outcome = iota
	// RedirectToLogin sin usuario: ir al login recordando la ruta de origen.
	RedirectToLogin
	// RedirectToRoleHome el rol no está permitido: ir al inicio del rol.
	RedirectToRoleHome
	// RenderChildren acceso concedido.
	RenderChildren
)

func (o Outcome) String() string {
	switch o {
	case Suspend:
		return "suspend"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToRoleHome:
		return "redirect_home"
	case RenderChildren:
		return "render"
	default:
		return "unknown"
	}
}

// Decision resultado del gate. Target es la ruta destino de una redirección;
// From la ruta que se intentaba abrir (solo en RedirectToLogin).
type Decision struct {
	Outcome Outcome
	Target  string
	From    string
}

// Guard decide qué hacer con un intento de render de currentPath.
// Sin roles requeridos basta con estar autenticado.
func Guard(id Identity, currentPath string, required ...entity.Role) Decision {
	if id.Loading {
		return Decision{Outcome: Suspend}
	}
	if id.User == nil {
		return Decision{Outcome: RedirectToLogin, Target: LoginPath, From: currentPath}
	}
	if len(required) > 0 && !hasRole(required, id.User.Role) {
		return Decision{Outcome: RedirectToRoleHome, Target: HomeFor(id.User.Role)}
	}
	return Decision{Outcome: RenderChildren}
}

// HomeFor ruta de inicio del rol. Total: cualquier rol desconocido va a "/".
func HomeFor(role entity.Role) string {
	switch role {
	case entity.RoleSeller:
		return HomeSeller
	case entity.RoleProduction:
		return HomeProduction
	default:
		return HomeDefault
	}
}

func hasRole(roles []entity.Role, r entity.Role) bool {
	for _, allowed := range roles {
		if allowed == r {
			return true
		}
	}
	return false
}
