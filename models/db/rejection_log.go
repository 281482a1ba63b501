package dbmodels

import (
	"time"

	"maintenance-backend/models"
)

// RejectionLogEntry is immutable once written. The ledger never updates or
// deletes rows; branch decisions read only the latest entry per gate.
type RejectionLogEntry struct {
	BaseModel
	RequestID      string               `gorm:"type:varchar(36);index:idx_rejection_request_gate"`
	Gate           models.RejectionGate `gorm:"type:varchar(20);index:idx_rejection_request_gate"`
	RejectReasonID string               `gorm:"type:varchar(36)"`
	RejectReason   *RejectReason        `gorm:"foreignKey:RejectReasonID"`
	Note           string
	RejectedBy     string `gorm:"type:varchar(36)"`
	RejectedAt     time.Time
}
