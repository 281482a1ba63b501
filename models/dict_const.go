package models

type PriorityLevel string

const (
	PriorityUrgent PriorityLevel = "URGENT"
	PriorityHigh   PriorityLevel = "HIGH"
	PriorityMedium PriorityLevel = "MEDIUM"
	PriorityLow    PriorityLevel = "LOW"
)

// Rank orders priorities for the auto-assign batch, higher first.
func (p PriorityLevel) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type MaintenanceType string

const (
	MaintenanceAdHoc    MaintenanceType = "AD_HOC"
	MaintenancePeriodic MaintenanceType = "PERIODIC"
	MaintenanceRepair   MaintenanceType = "REPAIR"
)

type CreatorType string

const (
	CreatorCustomer CreatorType = "CUSTOMER"
	CreatorEmployee CreatorType = "EMPLOYEE"
)

// RejectionGate is the lifecycle point a rejection was recorded at.
type RejectionGate string

const (
	GateAssignment   RejectionGate = "ASSIGNMENT"
	GatePlanApproval RejectionGate = "PLAN_APPROVAL"
	GateAcceptance   RejectionGate = "ACCEPTANCE"
)

type DamageLevel string

const (
	DamageLight  DamageLevel = "LIGHT"
	DamageMedium DamageLevel = "MEDIUM"
	DamageHeavy  DamageLevel = "HEAVY"
)

type SupportRequestStatus string

const (
	SupportPending  SupportRequestStatus = "PENDING"
	SupportApproved SupportRequestStatus = "APPROVED"
	SupportRejected SupportRequestStatus = "REJECTED"
)

type ShiftStatus string

const (
	ShiftAvailable ShiftStatus = "AVAILABLE"
	ShiftBusy      ShiftStatus = "BUSY"
	ShiftOff       ShiftStatus = "OFF"
)

// MaxAttachments caps photo references on requests, surveys and execution
// tasks; MaxTaskVideos caps video evidence per task.
const (
	MaxAttachments = 3
	MaxTaskVideos  = 1
)
