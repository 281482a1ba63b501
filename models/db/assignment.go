package dbmodels

import (
	"time"
)

// Assignment links a technician to a request. Historical assignments are
// retained; only one may be open (neither accepted nor rejected) at a time.
type Assignment struct {
	BaseModel
	RequestID    string      `gorm:"type:varchar(36);index"`
	TechnicianID string      `gorm:"type:varchar(36);index"`
	Technician   *Technician `gorm:"foreignKey:TechnicianID"`
	AssignedBy   string      `gorm:"type:varchar(36)"`
	AssignedAt   time.Time
	AcceptedAt   *time.Time
	RejectedAt   *time.Time
	IsMain       bool `gorm:"default:true"`
}

// IsOpen reports whether the assignment still awaits a technician decision.
func (a Assignment) IsOpen() bool {
	return a.AcceptedAt == nil && a.RejectedAt == nil
}
