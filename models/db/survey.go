package dbmodels

import (
	"time"

	"maintenance-backend/models"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Survey is created exactly once per request, when the assigned technician
// submits the site survey.
type Survey struct {
	BaseModel
	RequestID    string                 `gorm:"type:varchar(36);uniqueIndex"`
	CauseID      string                 `gorm:"type:varchar(36)"`
	DamageLevel  models.DamageLevel     `gorm:"type:varchar(20)"`
	TypeActual   models.MaintenanceType `gorm:"type:varchar(20)"`
	ActualIssue  string
	Attachments  pq.StringArray `gorm:"type:text[]"`
	TechnicianID string         `gorm:"type:varchar(36)"`
	SurveyDate   time.Time
}

func (s Survey) Validate() error {
	if s.DamageLevel == "" {
		return errors.New("damage level is required")
	}
	if len(s.Attachments) > models.MaxAttachments {
		return errors.Errorf("at most %d attachments are allowed", models.MaxAttachments)
	}
	return nil
}
