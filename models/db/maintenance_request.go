package dbmodels

import (
	"maintenance-backend/models"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// MaintenanceRequest is the aggregate root of the lifecycle. Status is
// written only by the lifecycle handler; everything else is caller data.
type MaintenanceRequest struct {
	BaseModel
	RequestCode    string                 `gorm:"type:varchar(36);uniqueIndex"`
	CreatorType    models.CreatorType     `gorm:"type:varchar(20)"`
	CreatorID      string                 `gorm:"type:varchar(36)"`
	DeviceID       string                 `gorm:"type:varchar(36);index"`
	Device         *Device                `gorm:"foreignKey:DeviceID"`
	IssueTypeID    string                 `gorm:"type:varchar(36);index"`
	IssueType      *IssueType             `gorm:"foreignKey:IssueTypeID"`
	Priority       models.PriorityLevel   `gorm:"type:varchar(20);index"`
	Type           models.MaintenanceType `gorm:"type:varchar(20)"`
	Status         models.RequestStatus   `gorm:"type:varchar(30);index"`
	LocationDetail string
	Note           string
	Attachments    pq.StringArray `gorm:"type:text[]"`

	Assignments []Assignment `gorm:"foreignKey:RequestID"`
	Survey      *Survey      `gorm:"foreignKey:RequestID"`
	Plan        *Plan        `gorm:"foreignKey:RequestID"`
	Execution   *Execution   `gorm:"foreignKey:RequestID"`
}

// ActiveAssignment returns the assignment with no terminal outcome yet, if
// any. At most one exists at a time.
func (m MaintenanceRequest) ActiveAssignment() *Assignment {
	for idx := range m.Assignments {
		if m.Assignments[idx].IsOpen() {
			return &m.Assignments[idx]
		}
	}
	return nil
}

func (m MaintenanceRequest) Validate() error {
	if m.DeviceID == "" {
		return errors.New("device reference is required")
	}
	if m.IssueTypeID == "" {
		return errors.New("issue type reference is required")
	}
	if len(m.Attachments) > models.MaxAttachments {
		return errors.Errorf("at most %d attachments are allowed", models.MaxAttachments)
	}
	return nil
}

type RequestFilter struct {
	Status    models.RequestStatus  `json:"status"`
	Priority  models.PriorityLevel  `json:"priority"`
	DeviceID  string                `json:"device_id"`
	CreatorID string                `json:"creator_id"`
	Search    string                `json:"search"`
}
