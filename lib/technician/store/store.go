package technicianstore

import (
	"time"

	apimodels "maintenance-backend/models/api"
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Technician) (id string, err error)
	GetByID(id string) (rec *dbmodels.Technician, err error)
	Update(id string, updMap map[string]interface{}) error
	List(pagination apimodels.Pagination, search string) (list []dbmodels.Technician, err error)
	ListCount(search string) (count int64, err error)
	ListActive() (list []dbmodels.Technician, err error)
	CreateShift(rec dbmodels.ShiftWindow) (id string, err error)
	ListShifts(technicianID string, from, to time.Time) (list []dbmodels.ShiftWindow, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Technician) (id string, err error) {
	err = i.db.
		Omit("Shifts").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (rec *dbmodels.Technician, err error) {
	rec = &dbmodels.Technician{}
	err = i.db.
		Model(&dbmodels.Technician{}).
		Where("id = ?", id).
		Preload("Shifts").
		First(rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Technician{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) applySearch(tx *gorm.DB, search string) *gorm.DB {
	if search != "" {
		tx = tx.Where("full_name ILIKE ? OR phone ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	return tx
}

func (i impl) List(pagination apimodels.Pagination, search string) (list []dbmodels.Technician, err error) {
	list = []dbmodels.Technician{}
	tx := i.db.
		Model(&dbmodels.Technician{})
	tx = i.applySearch(tx, search)
	page, limit := pagination.GetPage()
	err = tx.
		Order("full_name").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(search string) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.Technician{})
	tx = i.applySearch(tx, search)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListActive returns the matcher candidate pool with shifts preloaded.
func (i impl) ListActive() (list []dbmodels.Technician, err error) {
	list = []dbmodels.Technician{}
	err = i.db.
		Model(&dbmodels.Technician{}).
		Where("active").
		Preload("Shifts").
		Order("full_name").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) CreateShift(rec dbmodels.ShiftWindow) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListShifts(technicianID string, from, to time.Time) (list []dbmodels.ShiftWindow, err error) {
	list = []dbmodels.ShiftWindow{}
	err = i.db.
		Model(&dbmodels.ShiftWindow{}).
		Where("technician_id = ?", technicianID).
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
