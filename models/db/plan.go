package dbmodels

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Plan is the remediation plan for a request. A rejected plan is never
// deleted; the rejection is recorded in the ledger and the plan is replaced
// in place on resubmission.
type Plan struct {
	BaseModel
	RequestID    string         `gorm:"type:varchar(36);uniqueIndex"`
	SolutionRefs pq.StringArray `gorm:"type:text[]"` // ordered
	UseMaterial  bool
	CreatedBy    string `gorm:"type:varchar(36)"`
	Note         string

	Materials []MaterialLine `gorm:"foreignKey:PlanID"`
}

func (p Plan) Validate() error {
	if len(p.SolutionRefs) == 0 {
		return errors.New("at least one solution is required")
	}
	if p.UseMaterial && len(p.Materials) == 0 {
		return errors.New("material lines are required when the plan uses materials")
	}
	return nil
}
