package dbmodels

import (
	"maintenance-backend/models"

	"github.com/pkg/errors"
)

// Acceptance is one acceptance attempt. Rejected attempts are retained, one
// row per attempt.
type Acceptance struct {
	BaseModel
	RequestID       string          `gorm:"type:varchar(36);index"`
	ApproverType    models.UserRole `gorm:"type:varchar(20)"`
	ApproverID      string          `gorm:"type:varchar(36)"`
	Accepted        bool
	Rating          int
	IsOnTime        bool
	IsProfessional  bool
	IsDeviceWorking bool
	Comment         string
}

func (a Acceptance) Validate() error {
	if a.Rating < 0 || a.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	return nil
}
