package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/swifthomes-api/internal/domain/access"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
)

func TestLandingRouteFor(t *testing.T) {
	cases := map[entity.Role]string{
		entity.RoleSuperAdmin:      "/admin/dashboard",
		entity.RolePropertyAdmin:   "/admin/dashboard",
		entity.RoleTenant:          "/tenant/dashboard",
		entity.RoleServiceProvider: "/service-provider/dashboard",
		entity.RoleConcierge:       "/concierge/dashboard",
		entity.RoleVendor:          access.FallbackRoute,
		entity.Role("desconocido"): access.FallbackRoute,
	}
	for role, want := range cases {
		assert.Equal(t, want, access.LandingRouteFor(role), "rol %s", role)
	}
}

// El landing de cada rol con portal debe estar dentro de su propia navegación.
func TestLandingRoute_PermitidoParaSuRol(t *testing.T) {
	for _, role := range entity.AllRoles {
		landing := access.LandingRouteFor(role)
		if landing == access.FallbackRoute {
			continue
		}
		assert.True(t, access.Permits(role, landing), "rol %s debe poder ver %s", role, landing)
	}
}

func TestNavigationRoutesFor_OrdenYContenido(t *testing.T) {
	tenant := access.NavigationRoutesFor(entity.RoleTenant)
	if assert.Len(t, tenant, 12) {
		assert.Equal(t, "/tenant/dashboard", tenant[0].Path)
		assert.Equal(t, "/tenant/community", tenant[11].Path)
	}

	admin := access.NavigationRoutesFor(entity.RolePropertyAdmin)
	assert.Len(t, admin, 7)
	assert.Equal(t, "/admin/settings", admin[6].Path)

	super := access.NavigationRoutesFor(entity.RoleSuperAdmin)
	assert.Len(t, super, 8)
	assert.Equal(t, "/super-admin/organizations", super[7].Path)

	assert.Len(t, access.NavigationRoutesFor(entity.RoleConcierge), 4)
	assert.Len(t, access.NavigationRoutesFor(entity.RoleServiceProvider), 2)
	assert.Empty(t, access.NavigationRoutesFor(entity.RoleVendor))
}

// Modificar la copia devuelta no debe alterar la tabla.
func TestNavigationRoutesFor_DevuelveCopia(t *testing.T) {
	routes := access.NavigationRoutesFor(entity.RoleConcierge)
	routes[0].Path = "/hack"
	assert.Equal(t, "/concierge/dashboard", access.NavigationRoutesFor(entity.RoleConcierge)[0].Path)
}

func TestPermits_PortalesDisjuntos(t *testing.T) {
	assert.False(t, access.Permits(entity.RoleTenant, "/admin/dashboard"))
	assert.False(t, access.Permits(entity.RoleConcierge, "/tenant/payments"))
	assert.False(t, access.Permits(entity.RolePropertyAdmin, "/super-admin/organizations"))
	assert.True(t, access.Permits(entity.RoleSuperAdmin, "/super-admin/organizations"))
	assert.True(t, access.Permits(entity.RoleSuperAdmin, "/admin/hoa-billing"))
	assert.False(t, access.Permits(entity.RoleVendor, "/service-provider/dashboard"))
}

func TestAllowedRolesFor(t *testing.T) {
	assert.ElementsMatch(t,
		[]entity.Role{entity.RoleSuperAdmin, entity.RolePropertyAdmin},
		access.AllowedRolesFor("/admin/buildings"))
	assert.Equal(t, []entity.Role{entity.RoleSuperAdmin}, access.AllowedRolesFor("/super-admin/organizations"))
	assert.Empty(t, access.AllowedRolesFor("/no/existe"))
}

func TestAllRoutes_CubreTodosLosPortales(t *testing.T) {
	all := access.AllRoutes()
	assert.Len(t, all, 7+1+12+4+2)
	for _, r := range all {
		assert.NotEmpty(t, access.AllowedRolesFor(r.Path), "ruta %s sin roles", r.Path)
	}
}
