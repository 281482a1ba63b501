package materialshandler

import (
	"maintenance-backend/db"
	materialsstore "maintenance-backend/lib/materials/store"
	requeststore "maintenance-backend/lib/request/store"
	"maintenance-backend/models"
	materialsapimodels "maintenance-backend/models/api/materials"
	requestapimodels "maintenance-backend/models/api/request"
	dbmodels "maintenance-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	// View partitions lines into the plan's proposal ledger and the
	// execution's consumption ledger. The two are never reconciled.
	View(requestID string) (materialsapimodels.MaterialsView, error)
	Consume(requestID string, actorID string, role models.UserRole, lines []requestapimodels.MaterialLineData) (materialsapimodels.MaterialsView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithTx(nil)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	if tx == nil {
		tx = db.DB
	}
	return impl{
		store:    materialsstore.NewInstance(tx),
		requests: requeststore.NewInstance(tx),
	}
}

type impl struct {
	store    materialsstore.Provider
	requests requeststore.Provider
}

func (i impl) View(requestID string) (view materialsapimodels.MaterialsView, err error) {
	rec, err := i.requests.GetByID(requestID)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.NewReferentialIntegrity("request %v not found", requestID)
	}
	return i.buildView(rec)
}

func (i impl) buildView(rec *dbmodels.MaintenanceRequest) (view materialsapimodels.MaterialsView, err error) {
	view.Proposed = []materialsapimodels.MaterialLineView{}
	view.Consumed = []materialsapimodels.MaterialLineView{}
	if rec.Plan != nil {
		lines, err := i.store.ListByPlan(rec.Plan.ID)
		if err != nil {
			return view, err
		}
		for _, line := range lines {
			view.Proposed = append(view.Proposed, materialsapimodels.LineConvert(line))
		}
	}
	if rec.Execution != nil {
		lines, err := i.store.ListByExecution(rec.Execution.ID)
		if err != nil {
			return view, err
		}
		for _, line := range lines {
			view.Consumed = append(view.Consumed, materialsapimodels.LineConvert(line))
		}
	}
	return view, nil
}

// Consume appends to the execution ledger; it is only legal while the
// request is in the work phase.
func (i impl) Consume(requestID string, actorID string, role models.UserRole, lines []requestapimodels.MaterialLineData) (view materialsapimodels.MaterialsView, err error) {
	rec, err := i.requests.GetByID(requestID)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.NewReferentialIntegrity("request %v not found", requestID)
	}
	if rec.Status != models.StatusInMaintenance {
		return view, models.NewPreconditionFailed("materials can only be consumed during the work phase")
	}
	if rec.Execution == nil {
		return view, models.NewPreconditionFailed("request %v has no execution record", rec.RequestCode)
	}
	if !role.IsAdmin() && rec.Execution.MainTechnicianID != actorID {
		return view, models.NewForbidden("only the main technician may record consumption")
	}
	recs := make([]dbmodels.MaterialLine, 0, len(lines))
	for _, line := range lines {
		if err = line.Validate(); err != nil {
			return view, models.NewPreconditionFailed("%v", err)
		}
		executionID := rec.Execution.ID
		recs = append(recs, dbmodels.MaterialLine{
			ExecutionID:   &executionID,
			PartID:        line.PartID,
			Quantity:      line.Quantity,
			IsShortage:    line.IsShortage,
			IsNewProposal: line.IsNewProposal,
			WarehouseID:   line.WarehouseID,
		})
	}
	if err = i.store.CreateLines(recs); err != nil {
		return view, err
	}
	return i.buildView(rec)
}
