package models

type UserRole string

const (
	AdminRole      UserRole = "ADMIN"
	TechnicianRole UserRole = "TECHNICIAN"
	CustomerRole   UserRole = "CUSTOMER"
)

var roleHumanName = map[UserRole]string{
	AdminRole:      "Quản trị viên",
	TechnicianRole: "Kỹ thuật viên",
	CustomerRole:   "Khách hàng",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

const SystemUser = "system"
