package devicehandler

import (
	"maintenance-backend/db"
	devicestore "maintenance-backend/lib/dicts/device/store"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	dictapimodels "maintenance-backend/models/api/dict"
	dbmodels "maintenance-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(data dictapimodels.DeviceData) (dictapimodels.DeviceView, error)
	Update(id string, data dictapimodels.DeviceData) (dictapimodels.DeviceView, error)
	GetByID(id string) (*dictapimodels.DeviceView, error)
	List(pagination apimodels.Pagination, find dictapimodels.DeviceFind) ([]dictapimodels.DeviceView, int64, error)
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
		store: devicestore.NewInstance(tx),
	}
}

type impl struct {
	store devicestore.Provider
}

func (i impl) Create(data dictapimodels.DeviceData) (view dictapimodels.DeviceView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	id, err := i.store.Create(dbmodels.Device{
		Name:       data.Name,
		Code:       data.Code,
		Company:    data.Company,
		Department: data.Department,
		Location:   data.Location,
	})
	if err != nil {
		return view, err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	return dictapimodels.DeviceConvert(*rec), nil
}

func (i impl) Update(id string, data dictapimodels.DeviceData) (view dictapimodels.DeviceView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.NewReferentialIntegrity("device %v not found", id)
	}
	err = i.store.Update(id, map[string]interface{}{
		"name":       data.Name,
		"code":       data.Code,
		"company":    data.Company,
		"department": data.Department,
		"location":   data.Location,
	})
	if err != nil {
		return view, err
	}
	saved, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	return dictapimodels.DeviceConvert(*saved), nil
}

func (i impl) GetByID(id string) (*dictapimodels.DeviceView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	view := dictapimodels.DeviceConvert(*rec)
	return &view, nil
}

func (i impl) List(pagination apimodels.Pagination, find dictapimodels.DeviceFind) ([]dictapimodels.DeviceView, int64, error) {
	count, err := i.store.ListCount(find)
	if err != nil {
		return nil, 0, err
	}
	list, err := i.store.List(pagination, find)
	if err != nil {
		return nil, 0, err
	}
	views := make([]dictapimodels.DeviceView, 0, len(list))
	for _, rec := range list {
		views = append(views, dictapimodels.DeviceConvert(rec))
	}
	return views, count, nil
}
