// Package access contiene la tabla estática de rutas por rol: a dónde aterriza cada rol
// después del login y qué rutas puede ver en la navegación.
package access

import "github.com/jhoicas/swifthomes-api/internal/domain/entity"

// LoginRoute destino de toda redirección por falta de sesión o permisos.
const LoginRoute = "/auth/login"

// FallbackRoute destino de roles sin portal propio.
const FallbackRoute = "/"

// NavRoute entrada de la navegación lateral.
type NavRoute struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

var adminPortal = []NavRoute{
	{Label: "Dashboard", Path: "/admin/dashboard", Icon: "layout-dashboard"},
	{Label: "Buildings", Path: "/admin/buildings", Icon: "building"},
	{Label: "Users", Path: "/admin/users", Icon: "users"},
	{Label: "Tickets", Path: "/admin/tickets", Icon: "ticket"},
	{Label: "Mailroom", Path: "/admin/mailroom", Icon: "mail"},
	{Label: "HOA Billing", Path: "/admin/hoa-billing", Icon: "receipt"},
	{Label: "Settings", Path: "/admin/settings", Icon: "settings"},
}

var superAdminPortal = []NavRoute{
	{Label: "Organizations", Path: "/super-admin/organizations", Icon: "globe"},
}

var tenantPortal = []NavRoute{
	{Label: "Dashboard", Path: "/tenant/dashboard", Icon: "home"},
	{Label: "Payments", Path: "/tenant/payments", Icon: "credit-card"},
	{Label: "Tickets", Path: "/tenant/tickets", Icon: "wrench"},
	{Label: "Packages", Path: "/tenant/packages", Icon: "package"},
	{Label: "Subscriptions", Path: "/tenant/subscriptions", Icon: "repeat"},
	{Label: "Smart Home", Path: "/tenant/smart-home", Icon: "lightbulb"},
	{Label: "Home Assistant", Path: "/tenant/home-assistant", Icon: "bot"},
	{Label: "Virtual Tours", Path: "/tenant/virtual-tours", Icon: "video"},
	{Label: "Credit Score", Path: "/tenant/credit-score", Icon: "trending-up"},
	{Label: "Predictive Maintenance", Path: "/tenant/predictive-maintenance", Icon: "activity"},
	{Label: "Solar Energy", Path: "/tenant/solar-energy", Icon: "sun"},
	{Label: "Community", Path: "/tenant/community", Icon: "message-circle"},
}

var conciergePortal = []NavRoute{
	{Label: "Dashboard", Path: "/concierge/dashboard", Icon: "layout-dashboard"},
	{Label: "Visitors", Path: "/concierge/visitors", Icon: "user-check"},
	{Label: "Notifications", Path: "/concierge/notifications", Icon: "bell"},
	{Label: "Schedule", Path: "/concierge/schedule", Icon: "calendar"},
}

var serviceProviderPortal = []NavRoute{
	{Label: "Dashboard", Path: "/service-provider/dashboard", Icon: "layout-dashboard"},
	{Label: "Settings", Path: "/service-provider/settings", Icon: "settings"},
}

// LandingRouteFor devuelve la ruta de aterrizaje del rol después del login.
func LandingRouteFor(role entity.Role) string {
	switch role {
	case entity.RoleSuperAdmin, entity.RolePropertyAdmin:
		return "/admin/dashboard"
	case entity.RoleTenant:
		return "/tenant/dashboard"
	case entity.RoleServiceProvider:
		return "/service-provider/dashboard"
	case entity.RoleConcierge:
		return "/concierge/dashboard"
	default:
		return FallbackRoute
	}
}

// NavigationRoutesFor devuelve la navegación del rol, en orden. Devuelve una copia.
func NavigationRoutesFor(role entity.Role) []NavRoute {
	var src [][]NavRoute
	switch role {
	case entity.RoleSuperAdmin:
		src = [][]NavRoute{adminPortal, superAdminPortal}
	case entity.RolePropertyAdmin:
		src = [][]NavRoute{adminPortal}
	case entity.RoleTenant:
		src = [][]NavRoute{tenantPortal}
	case entity.RoleConcierge:
		src = [][]NavRoute{conciergePortal}
	case entity.RoleServiceProvider:
		src = [][]NavRoute{serviceProviderPortal}
	}
	out := make([]NavRoute, 0)
	for _, portal := range src {
		out = append(out, portal...)
	}
	return out
}

// Permits informa si el rol puede visitar path.
func Permits(role entity.Role, path string) bool {
	for _, r := range NavigationRoutesFor(role) {
		if r.Path == path {
			return true
		}
	}
	return false
}

// AllowedRolesFor devuelve los roles que pueden visitar path (vacío si la ruta no existe).
func AllowedRolesFor(path string) []entity.Role {
	var roles []entity.Role
	for _, role := range entity.AllRoles {
		if Permits(role, path) {
			roles = append(roles, role)
		}
	}
	return roles
}

// AllRoutes lista todas las rutas protegidas sin repetir, en orden de portal.
func AllRoutes() []NavRoute {
	portals := [][]NavRoute{adminPortal, superAdminPortal, tenantPortal, conciergePortal, serviceProviderPortal}
	var out []NavRoute
	for _, p := range portals {
		out = append(out, p...)
	}
	return out
}
