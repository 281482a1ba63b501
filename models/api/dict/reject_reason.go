package dictapimodels

import (
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
)

type RejectReasonData struct {
	Gate models.RejectionGate `json:"gate"`
	Name string               `json:"name"`
}

func (r RejectReasonData) Validate() error {
	if r.Gate == "" {
		return errors.New("gate is required")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type RejectReasonView struct {
	RejectReasonData
	ID        string `json:"id"`
	CanChange bool   `json:"can_change"`
}

type RejectReasonFind struct {
	Gate   models.RejectionGate `json:"gate"`
	Search string               `json:"search"`
}

func RejectReasonConvert(rec dbmodels.RejectReason) RejectReasonView {
	return RejectReasonView{
		RejectReasonData: RejectReasonData{
			Gate: rec.Gate,
			Name: rec.Name,
		},
		ID:        rec.ID,
		CanChange: true,
	}
}
