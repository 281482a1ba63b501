package dbmodels

import "github.com/pkg/errors"

// MaterialLine is shared by the proposed (plan) and consumed (execution)
// ledgers; exactly one of PlanID/ExecutionID is set.
type MaterialLine struct {
	BaseModel
	PlanID        *string `gorm:"type:varchar(36);index"`
	ExecutionID   *string `gorm:"type:varchar(36);index"`
	PartID        string  `gorm:"type:varchar(36)"`
	Quantity      int
	IsShortage    bool
	IsNewProposal bool
	WarehouseID   *string `gorm:"type:varchar(36)"`
}

func (m MaterialLine) Validate() error {
	if m.PartID == "" {
		return errors.New("part reference is required")
	}
	if m.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}
