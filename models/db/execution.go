package dbmodels

import (
	"time"

	"maintenance-backend/models"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Execution tracks the work phase of a request. Created when the technician
// starts work, closed when the checklist is complete.
type Execution struct {
	BaseModel
	RequestID        string `gorm:"type:varchar(36);uniqueIndex"`
	MainTechnicianID string `gorm:"type:varchar(36)"`
	StartAt          time.Time
	EndAt            *time.Time

	Tasks           []ExecutionTask  `gorm:"foreignKey:ExecutionID"`
	SupportRequests []SupportRequest `gorm:"foreignKey:ExecutionID"`
	Materials       []MaterialLine   `gorm:"foreignKey:ExecutionID"`
}

// Progress returns the checklist completion counters.
func (e Execution) Progress() (done, total int) {
	total = len(e.Tasks)
	for _, t := range e.Tasks {
		if t.Done {
			done++
		}
	}
	return done, total
}

type ExecutionTask struct {
	BaseModel
	ExecutionID string `gorm:"type:varchar(36);index"`
	Content     string
	Done        bool
	DoneBy      *string `gorm:"type:varchar(36)"`
	DoneAt      *time.Time
	Note        string
	Images      pq.StringArray `gorm:"type:text[]"`
	VideoRef    *string
}

func (t ExecutionTask) ValidateEvidence() error {
	if len(t.Images) > models.MaxAttachments {
		return errors.Errorf("at most %d images are allowed per task", models.MaxAttachments)
	}
	return nil
}

// SupportRequest is a technician-to-technician help request during
// execution. It is informational: it never gates lifecycle transitions and
// is resolved by an admin independently.
type SupportRequest struct {
	BaseModel
	ExecutionID  string `gorm:"type:varchar(36);index"`
	RequestedBy  string `gorm:"type:varchar(36)"`
	TechnicianID string `gorm:"type:varchar(36)"` // requested helper
	Reason       string
	Status       models.SupportRequestStatus `gorm:"type:varchar(20)"`
	ResolvedBy   *string                     `gorm:"type:varchar(36)"`
	ResolvedAt   *time.Time
}
