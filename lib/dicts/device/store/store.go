package devicestore

import (
	apimodels "maintenance-backend/models/api"
	dictapimodels "maintenance-backend/models/api/dict"
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Device) (id string, err error)
	GetByID(id string) (rec *dbmodels.Device, err error)
	Update(id string, updMap map[string]interface{}) error
	List(pagination apimodels.Pagination, find dictapimodels.DeviceFind) (list []dbmodels.Device, err error)
	ListCount(find dictapimodels.DeviceFind) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Device) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (rec *dbmodels.Device, err error) {
	rec = &dbmodels.Device{}
	err = i.db.
		Model(&dbmodels.Device{}).
		Where("id = ?", id).
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
		Model(&dbmodels.Device{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) applyFind(tx *gorm.DB, find dictapimodels.DeviceFind) *gorm.DB {
	if find.Search != "" {
		tx = tx.Where("name ILIKE ? OR code ILIKE ?", "%"+find.Search+"%", "%"+find.Search+"%")
	}
	if find.Company != "" {
		tx = tx.Where("company = ?", find.Company)
	}
	if find.Department != "" {
		tx = tx.Where("department = ?", find.Department)
	}
	return tx
}

func (i impl) List(pagination apimodels.Pagination, find dictapimodels.DeviceFind) (list []dbmodels.Device, err error) {
	list = []dbmodels.Device{}
	tx := i.db.
		Model(&dbmodels.Device{})
	tx = i.applyFind(tx, find)
	page, limit := pagination.GetPage()
	err = tx.
		Order("name").
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

func (i impl) ListCount(find dictapimodels.DeviceFind) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.Device{})
	tx = i.applyFind(tx, find)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
