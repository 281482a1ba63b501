package technicianhandler

import (
	"time"

	"maintenance-backend/db"
	technicianstore "maintenance-backend/lib/technician/store"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	technicianapimodels "maintenance-backend/models/api/technician"
	dbmodels "maintenance-backend/models/db"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Provider interface {
	Create(data technicianapimodels.TechnicianData) (technicianapimodels.TechnicianView, error)
	Update(id string, data technicianapimodels.TechnicianData) (technicianapimodels.TechnicianView, error)
	GetByID(id string) (*technicianapimodels.TechnicianView, error)
	List(pagination apimodels.Pagination, search string) ([]technicianapimodels.TechnicianView, int64, error)
	AddShift(technicianID string, data technicianapimodels.ShiftData) (technicianapimodels.ShiftView, error)
	Shifts(technicianID string, from, to time.Time) ([]technicianapimodels.ShiftView, error)
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
		store: technicianstore.NewInstance(tx),
	}
}

type impl struct {
	store technicianstore.Provider
}

func (i impl) Create(data technicianapimodels.TechnicianData) (view technicianapimodels.TechnicianView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	rec := dbmodels.Technician{
		FullName: data.FullName,
		Phone:    data.Phone,
		Email:    data.Email,
		Skills:   pq.StringArray(data.Skills),
		Active:   true,
	}
	if data.Active != nil {
		rec.Active = *data.Active
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return view, err
	}
	saved, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	return technicianapimodels.TechnicianConvert(*saved), nil
}

func (i impl) Update(id string, data technicianapimodels.TechnicianData) (view technicianapimodels.TechnicianView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.NewReferentialIntegrity("technician %v not found", id)
	}
	updMap := map[string]interface{}{
		"full_name": data.FullName,
		"phone":     data.Phone,
		"email":     data.Email,
		"skills":    pq.StringArray(data.Skills),
	}
	if data.Active != nil {
		updMap["active"] = *data.Active
	}
	if err = i.store.Update(id, updMap); err != nil {
		return view, err
	}
	saved, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	return technicianapimodels.TechnicianConvert(*saved), nil
}

func (i impl) GetByID(id string) (*technicianapimodels.TechnicianView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	view := technicianapimodels.TechnicianConvert(*rec)
	return &view, nil
}

func (i impl) List(pagination apimodels.Pagination, search string) ([]technicianapimodels.TechnicianView, int64, error) {
	count, err := i.store.ListCount(search)
	if err != nil {
		return nil, 0, err
	}
	list, err := i.store.List(pagination, search)
	if err != nil {
		return nil, 0, err
	}
	views := make([]technicianapimodels.TechnicianView, 0, len(list))
	for _, rec := range list {
		views = append(views, technicianapimodels.TechnicianConvert(rec))
	}
	return views, count, nil
}

func (i impl) AddShift(technicianID string, data technicianapimodels.ShiftData) (view technicianapimodels.ShiftView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	rec, err := i.store.GetByID(technicianID)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.NewReferentialIntegrity("technician %v not found", technicianID)
	}
	id, err := i.store.CreateShift(dbmodels.ShiftWindow{
		TechnicianID: technicianID,
		Status:       data.Status,
		StartAt:      data.StartAt,
		EndAt:        data.EndAt,
	})
	if err != nil {
		return view, err
	}
	return technicianapimodels.ShiftView{
		ID:      id,
		Status:  data.Status,
		StartAt: data.StartAt,
		EndAt:   data.EndAt,
	}, nil
}

func (i impl) Shifts(technicianID string, from, to time.Time) ([]technicianapimodels.ShiftView, error) {
	list, err := i.store.ListShifts(technicianID, from, to)
	if err != nil {
		return nil, err
	}
	views := make([]technicianapimodels.ShiftView, 0, len(list))
	for _, rec := range list {
		views = append(views, technicianapimodels.ShiftView{
			ID:      rec.ID,
			Status:  rec.Status,
			StartAt: rec.StartAt,
			EndAt:   rec.EndAt,
		})
	}
	return views, nil
}
