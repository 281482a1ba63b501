package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	RequestModule    Module = "REQUEST"
	ExecutionModule  Module = "EXECUTION"
	MaterialsModule  Module = "MATERIALS"
	TechnicianModule Module = "TECHNICIAN"
	DictModule       Module = "DICT"
	ReportModule     Module = "REPORT"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	FlowPermission   Permission = "FLOW"
	ManagePermission Permission = "MANAGE"
	ExportPermission Permission = "EXPORT"
)
