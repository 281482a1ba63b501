package rejectionhandler

import (
	"maintenance-backend/db"
	rejectionstore "maintenance-backend/lib/rejection/store"
	"maintenance-backend/models"
	requestapimodels "maintenance-backend/models/api/request"
	dbmodels "maintenance-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	History(requestID string) ([]requestapimodels.RejectionLogView, error)
	Latest(requestID string, gate models.RejectionGate) (*requestapimodels.RejectionLogView, error)
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
		store: rejectionstore.NewInstance(tx),
	}
}

type impl struct {
	store rejectionstore.Provider
}

func (i impl) History(requestID string) ([]requestapimodels.RejectionLogView, error) {
	list, err := i.store.History(requestID)
	if err != nil {
		return nil, err
	}
	views := make([]requestapimodels.RejectionLogView, 0, len(list))
	for _, rec := range list {
		views = append(views, convert(rec))
	}
	return views, nil
}

func (i impl) Latest(requestID string, gate models.RejectionGate) (*requestapimodels.RejectionLogView, error) {
	rec, err := i.store.Latest(requestID, gate)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	view := convert(*rec)
	return &view, nil
}

func convert(rec dbmodels.RejectionLogEntry) requestapimodels.RejectionLogView {
	view := requestapimodels.RejectionLogView{
		ID:         rec.ID,
		Gate:       rec.Gate,
		ReasonID:   rec.RejectReasonID,
		Note:       rec.Note,
		RejectedBy: rec.RejectedBy,
		RejectedAt: rec.RejectedAt.Format("02.01.2006 15:04:05"),
	}
	if rec.RejectReason != nil {
		view.ReasonName = rec.RejectReason.Name
	}
	return view
}
