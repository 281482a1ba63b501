package rbac

import (
	"maintenance-backend/models"
)

var (
	AdminOnly           = []models.UserRole{models.AdminRole}
	AdminTechnicianSet  = []models.UserRole{models.AdminRole, models.TechnicianRole}
	AdminCustomerSet    = []models.UserRole{models.AdminRole, models.CustomerRole}
	AllRoles            = []models.UserRole{models.AdminRole, models.TechnicianRole, models.CustomerRole}
	TechnicianOnly      = []models.UserRole{models.TechnicianRole}
)

func (i *impl) initRules() {
	i.addRequestRbac()
	i.addExecutionRbac()
	i.addMaterialsRbac()
	i.addTechnicianRbac()
	i.addDictRbac()
	i.addReportRbac()
}

func (i *impl) addRequestRbac() {
	// VIEW
	i.RegisterRule(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/requests/list [post]", nil)
	i.RegisterRule(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/requests/{id} [get]", nil)
	i.RegisterRule(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/requests/{id}/rejections [get]", nil)
	// CREATE
	i.RegisterRule(models.RequestModule, models.CreatePermission, AdminCustomerSet, "/api/v1/requests [post]", nil)
	// FLOW: the transition machine enforces role and identity per event,
	// the gate here only keeps anonymous roles out.
	i.RegisterRule(models.RequestModule, models.FlowPermission, AllRoles, "/api/v1/requests/{id}/transition/{event} [put]", AllowFunc())
	i.RegisterRule(models.RequestModule, models.FlowPermission, AdminOnly, "/api/v1/requests/{id}/auto_assign [post]", nil)
	i.RegisterRule(models.RequestModule, models.FlowPermission, AdminOnly, "/api/v1/requests/auto_assign_all [post]", nil)
	// FILES
	i.RegisterRule(models.RequestModule, models.EditPermission, AllRoles, "/api/v1/requests/{id}/files/{type} [post]", nil)
	i.RegisterRule(models.RequestModule, models.ViewPermission, AllRoles, "/api/v1/files/{id} [get]", nil)
}

func (i *impl) addExecutionRbac() {
	// VIEW
	i.RegisterRule(models.ExecutionModule, models.ViewPermission, AllRoles, "/api/v1/requests/{id}/tasks [get]", nil)
	i.RegisterRule(models.ExecutionModule, models.ViewPermission, AllRoles, "/api/v1/requests/{id}/progress [get]", nil)
	// EDIT
	i.RegisterRule(models.ExecutionModule, models.EditPermission, AdminTechnicianSet, "/api/v1/requests/{id}/tasks [post]", nil)
	i.RegisterRule(models.ExecutionModule, models.EditPermission, AdminTechnicianSet, "/api/v1/requests/{id}/tasks/{taskId}/done [put]", nil)
	// MANAGE
	i.RegisterRule(models.ExecutionModule, models.EditPermission, TechnicianOnly, "/api/v1/requests/{id}/support [post]", nil)
	i.RegisterRule(models.ExecutionModule, models.ManagePermission, AdminOnly, "/api/v1/support/{id}/approve [put]", nil)
	i.RegisterRule(models.ExecutionModule, models.ManagePermission, AdminOnly, "/api/v1/support/{id}/reject [put]", nil)
}

func (i *impl) addMaterialsRbac() {
	i.RegisterRule(models.MaterialsModule, models.ViewPermission, AllRoles, "/api/v1/requests/{id}/materials [get]", nil)
	i.RegisterRule(models.MaterialsModule, models.EditPermission, AdminTechnicianSet, "/api/v1/requests/{id}/materials/consume [post]", nil)
}

func (i *impl) addTechnicianRbac() {
	// VIEW
	i.RegisterRule(models.TechnicianModule, models.ViewPermission, AdminTechnicianSet, "/api/v1/technicians/list [post]", nil)
	i.RegisterRule(models.TechnicianModule, models.ViewPermission, AdminTechnicianSet, "/api/v1/technicians/{id} [get]", nil)
	i.RegisterRule(models.TechnicianModule, models.ViewPermission, AdminTechnicianSet, "/api/v1/technicians/{id}/shifts [get]", nil)
	// MANAGE
	i.RegisterRule(models.TechnicianModule, models.ManagePermission, AdminOnly, "/api/v1/technicians [post]", nil)
	i.RegisterRule(models.TechnicianModule, models.ManagePermission, AdminOnly, "/api/v1/technicians/{id} [put]", nil)
	i.RegisterRule(models.TechnicianModule, models.ManagePermission, AdminOnly, "/api/v1/technicians/{id}/shifts [post]", nil)
}

func (i *impl) addDictRbac() {
	// VIEW
	i.RegisterRule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/reject_reasons [get]", nil)
	i.RegisterRule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/devices/list [post]", nil)
	i.RegisterRule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/devices/{id} [get]", nil)
	i.RegisterRule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/issue_types [get]", nil)
	// MANAGE
	i.RegisterRule(models.DictModule, models.ManagePermission, AdminOnly, "/api/v1/dict/reject_reasons [post]", nil)
	i.RegisterRule(models.DictModule, models.ManagePermission, AdminOnly, "/api/v1/dict/reject_reasons/{id} [delete]", nil)
	i.RegisterRule(models.DictModule, models.ManagePermission, AdminOnly, "/api/v1/dict/devices [post]", nil)
	i.RegisterRule(models.DictModule, models.ManagePermission, AdminOnly, "/api/v1/dict/devices/{id} [put]", nil)
	i.RegisterRule(models.DictModule, models.ManagePermission, AdminOnly, "/api/v1/dict/issue_types [post]", nil)
	i.RegisterRule(models.DictModule, models.ManagePermission, AdminOnly, "/api/v1/dict/issue_types/{id} [put]", nil)
	i.RegisterRule(models.DictModule, models.ManagePermission, AdminOnly, "/api/v1/dict/issue_types/{id} [delete]", nil)
}

func (i *impl) addReportRbac() {
	i.RegisterRule(models.ReportModule, models.ExportPermission, AdminOnly, "/api/v1/requests/export [post]", nil)
	i.RegisterRule(models.ReportModule, models.ExportPermission, AdminCustomerSet, "/api/v1/requests/{id}/acceptance_report [get]", nil)
}
