package requesthandler

import (
	"maintenance-backend/db"
	devicestore "maintenance-backend/lib/dicts/device/store"
	issuestore "maintenance-backend/lib/dicts/issue/store"
	requeststore "maintenance-backend/lib/request/store"
	"maintenance-backend/lib/utils/helpers"
	"maintenance-backend/models"
	requestapimodels "maintenance-backend/models/api/request"
	dbmodels "maintenance-backend/models/db"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(creatorID string, role models.UserRole, data requestapimodels.RequestCreateData) (requestapimodels.RequestView, error)
	GetByID(id string) (*requestapimodels.RequestView, error)
	List(filter requestapimodels.RequestListFilter) ([]requestapimodels.RequestView, int64, error)
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
		store:   requeststore.NewInstance(tx),
		devices: devicestore.NewInstance(tx),
		issues:  issuestore.NewInstance(tx),
	}
}

type impl struct {
	store   requeststore.Provider
	devices devicestore.Provider
	issues  issuestore.Provider
}

// Create registers a new request in the initial state. Customers become
// CUSTOMER creators regardless of what the payload claims.
func (i impl) Create(creatorID string, role models.UserRole, data requestapimodels.RequestCreateData) (view requestapimodels.RequestView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	device, err := i.devices.GetByID(data.DeviceID)
	if err != nil {
		return view, err
	}
	if device == nil {
		return view, models.NewReferentialIntegrity("device %v not found", data.DeviceID)
	}
	issue, err := i.issues.GetByID(data.IssueTypeID)
	if err != nil {
		return view, err
	}
	if issue == nil {
		return view, models.NewReferentialIntegrity("issue type %v not found", data.IssueTypeID)
	}
	creatorType := data.CreatorType
	if role == models.CustomerRole {
		creatorType = models.CreatorCustomer
	}
	rec := dbmodels.MaintenanceRequest{
		RequestCode:    helpers.NewRequestCode(),
		CreatorType:    creatorType,
		CreatorID:      creatorID,
		DeviceID:       device.ID,
		IssueTypeID:    issue.ID,
		Priority:       data.Priority,
		Type:           data.Type,
		Status:         models.StatusAwaitingAssignment,
		LocationDetail: data.LocationDetail,
		Note:           data.Note,
		Attachments:    pq.StringArray(data.Attachments),
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return view, err
	}
	log.
		WithField("request_id", id).
		WithField("request_code", rec.RequestCode).
		Info("maintenance request created")
	saved, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	return requestapimodels.RequestConvert(*saved), nil
}

func (i impl) GetByID(id string) (*requestapimodels.RequestView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	view := requestapimodels.RequestConvert(*rec)
	return &view, nil
}

func (i impl) List(filter requestapimodels.RequestListFilter) ([]requestapimodels.RequestView, int64, error) {
	count, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	list, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]requestapimodels.RequestView, 0, len(list))
	for _, rec := range list {
		views = append(views, requestapimodels.RequestConvert(rec))
	}
	return views, count, nil
}
