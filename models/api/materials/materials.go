package materialsapimodels

import (
	dbmodels "maintenance-backend/models/db"
)

type MaterialLineView struct {
	ID            string  `json:"id"`
	PartID        string  `json:"part_id"`
	Quantity      int     `json:"quantity"`
	IsShortage    bool    `json:"is_shortage"`
	IsNewProposal bool    `json:"is_new_proposal"`
	WarehouseID   *string `json:"warehouse_id,omitempty"`
}

// MaterialsView partitions lines by ledger: proposed by the plan, consumed
// by the execution. The two are deliberately not reconciled.
type MaterialsView struct {
	Proposed []MaterialLineView `json:"proposed"`
	Consumed []MaterialLineView `json:"consumed"`
}

func LineConvert(rec dbmodels.MaterialLine) MaterialLineView {
	return MaterialLineView{
		ID:            rec.ID,
		PartID:        rec.PartID,
		Quantity:      rec.Quantity,
		IsShortage:    rec.IsShortage,
		IsNewProposal: rec.IsNewProposal,
		WarehouseID:   rec.WarehouseID,
	}
}
