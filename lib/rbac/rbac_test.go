package rbac

import (
	"testing"

	"maintenance-backend/models"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/requests/{id}/transition/{event} [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r1 := pathToRegex(path)

		validUri := "/api/v1/requests/123-321/transition/assign"
		require.True(t, r1.MatchString(validUri))

		invalidUri := "/api/v1/requests/transition/assign"
		require.False(t, r1.MatchString(invalidUri))

		path, method, err = parseSwaggerPattern("/api/v1/requests/{id}/tasks/{taskId}/done [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r2 := pathToRegex(path)

		require.True(t, r2.MatchString("/api/v1/requests/req-1/tasks/task-2/done"))
		require.False(t, r2.MatchString("/api/v1/requests/req-1/tasks/done"))
	})

	t.Run(`pattern without a method is refused`, func(t *testing.T) {
		_, _, err := parseSwaggerPattern("/api/v1/requests")
		require.Error(t, err)
	})
}

func newTestHandler() *impl {
	i := &impl{
		rules:       map[HTTPMethod]*PathRule{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	return i
}

func allowed(t *testing.T, i *impl, method, path string, role models.UserRole) bool {
	t.Helper()
	handler, found := i.GetRuleFunc(method, path)
	require.True(t, found, "%v %v must have a rule", method, path)
	return handler("user-1", role, path)
}

func TestRules(t *testing.T) {
	i := newTestHandler()

	t.Run(`request creation is for admins and customers`, func(t *testing.T) {
		require.True(t, allowed(t, i, "POST", "/api/v1/requests", models.AdminRole))
		require.True(t, allowed(t, i, "POST", "/api/v1/requests", models.CustomerRole))
		require.False(t, allowed(t, i, "POST", "/api/v1/requests", models.TechnicianRole))
	})

	t.Run(`transitions are open to every authenticated role`, func(t *testing.T) {
		path := "/api/v1/requests/req-1/transition/technician_accept"
		require.True(t, allowed(t, i, "PUT", path, models.AdminRole))
		require.True(t, allowed(t, i, "PUT", path, models.TechnicianRole))
		require.True(t, allowed(t, i, "PUT", path, models.CustomerRole))
	})

	t.Run(`auto-assign is admin only`, func(t *testing.T) {
		require.True(t, allowed(t, i, "POST", "/api/v1/requests/auto_assign_all", models.AdminRole))
		require.False(t, allowed(t, i, "POST", "/api/v1/requests/auto_assign_all", models.TechnicianRole))
		require.False(t, allowed(t, i, "POST", "/api/v1/requests/req-1/auto_assign", models.CustomerRole))
	})

	t.Run(`support resolution is admin only, creation technician only`, func(t *testing.T) {
		require.True(t, allowed(t, i, "PUT", "/api/v1/support/sup-1/approve", models.AdminRole))
		require.False(t, allowed(t, i, "PUT", "/api/v1/support/sup-1/approve", models.TechnicianRole))
		require.True(t, allowed(t, i, "POST", "/api/v1/requests/req-1/support", models.TechnicianRole))
		require.False(t, allowed(t, i, "POST", "/api/v1/requests/req-1/support", models.AdminRole))
	})

	t.Run(`dictionary management is admin only, viewing is open`, func(t *testing.T) {
		require.True(t, allowed(t, i, "GET", "/api/v1/dict/issue_types", models.CustomerRole))
		require.False(t, allowed(t, i, "POST", "/api/v1/dict/issue_types", models.CustomerRole))
		require.True(t, allowed(t, i, "DELETE", "/api/v1/dict/reject_reasons/r-1", models.AdminRole))
		require.False(t, allowed(t, i, "DELETE", "/api/v1/dict/reject_reasons/r-1", models.TechnicianRole))
	})

	t.Run(`technician directory hides from customers`, func(t *testing.T) {
		require.True(t, allowed(t, i, "POST", "/api/v1/technicians/list", models.TechnicianRole))
		require.False(t, allowed(t, i, "POST", "/api/v1/technicians/list", models.CustomerRole))
		require.False(t, allowed(t, i, "POST", "/api/v1/technicians", models.TechnicianRole))
	})

	t.Run(`export is admin only, acceptance report includes customers`, func(t *testing.T) {
		require.False(t, allowed(t, i, "POST", "/api/v1/requests/export", models.CustomerRole))
		require.True(t, allowed(t, i, "GET", "/api/v1/requests/req-1/acceptance_report", models.CustomerRole))
		require.False(t, allowed(t, i, "GET", "/api/v1/requests/req-1/acceptance_report", models.TechnicianRole))
	})

	t.Run(`unknown paths carry no rule`, func(t *testing.T) {
		_, found := i.GetRuleFunc("GET", "/api/v1/unknown")
		require.False(t, found)
	})

	t.Run(`permission matrix is filled`, func(t *testing.T) {
		adminPerms := i.GetPermissions(models.AdminRole)
		require.Contains(t, adminPerms, models.DictModule)
		require.Contains(t, adminPerms[models.DictModule], models.ManagePermission)

		customerPerms := i.GetPermissions(models.CustomerRole)
		require.NotContains(t, customerPerms[models.TechnicianModule], models.ViewPermission)
	})
}
