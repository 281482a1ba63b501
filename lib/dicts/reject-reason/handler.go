package rejectreasonhandler

import (
	"maintenance-backend/db"
	rejectreasonstore "maintenance-backend/lib/dicts/reject-reason/store"
	"maintenance-backend/models"
	dictapimodels "maintenance-backend/models/api/dict"
	dbmodels "maintenance-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(data dictapimodels.RejectReasonData) (dictapimodels.RejectReasonView, error)
	List(gate models.RejectionGate) ([]dictapimodels.RejectReasonView, error)
	Delete(id string) error
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
		store: rejectreasonstore.NewInstance(tx),
	}
}

type impl struct {
	store rejectreasonstore.Provider
}

func (i impl) Create(data dictapimodels.RejectReasonData) (view dictapimodels.RejectReasonView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	id, err := i.store.Create(dbmodels.RejectReason{
		Gate: data.Gate,
		Name: data.Name,
	})
	if err != nil {
		return view, err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	return dictapimodels.RejectReasonConvert(*rec), nil
}

func (i impl) List(gate models.RejectionGate) ([]dictapimodels.RejectReasonView, error) {
	list, err := i.store.List(gate)
	if err != nil {
		return nil, err
	}
	views := make([]dictapimodels.RejectReasonView, 0, len(list))
	for _, rec := range list {
		views = append(views, dictapimodels.RejectReasonConvert(rec))
	}
	return views, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.NewReferentialIntegrity("reject reason %v not found", id)
	}
	return i.store.Delete(id)
}
