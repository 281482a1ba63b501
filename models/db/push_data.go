package dbmodels

// PushData is a notification event pending delivery to an offline user; the
// ws hub replays and deletes rows on reconnect.
type PushData struct {
	BaseModel
	ToUserID  string   `gorm:"type:varchar(36);index"`
	RequestID string   `gorm:"type:varchar(36)"`
	Code      PushCode `gorm:"type:varchar(50)"`
	Msg       string
}

type PushCode string

const (
	PushRequestAssigned  PushCode = "request_assigned"
	PushStatusChanged    PushCode = "request_status_changed"
	PushPlanDecision     PushCode = "plan_decision"
	PushAcceptanceResult PushCode = "acceptance_result"
	PushSupportRequested PushCode = "support_requested"
	PushSupportResolved  PushCode = "support_resolved"
)
