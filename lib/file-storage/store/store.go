package filestoragestore

import (
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.FileStorage) (id string, err error)
	GetByID(id string) (rec *dbmodels.FileStorage, err error)
	ListByRequest(requestID string, fileType dbmodels.FileType) (list []dbmodels.FileStorage, err error)
	CountByType(requestID string, fileType dbmodels.FileType) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.FileStorage) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (rec *dbmodels.FileStorage, err error) {
	rec = &dbmodels.FileStorage{}
	err = i.db.
		Model(&dbmodels.FileStorage{}).
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

func (i impl) ListByRequest(requestID string, fileType dbmodels.FileType) (list []dbmodels.FileStorage, err error) {
	list = []dbmodels.FileStorage{}
	tx := i.db.
		Model(&dbmodels.FileStorage{}).
		Where("request_id = ?", requestID)
	if fileType != "" {
		tx = tx.Where("type = ?", fileType)
	}
	err = tx.
		Order("created_at").
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

func (i impl) CountByType(requestID string, fileType dbmodels.FileType) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.FileStorage{}).
		Where("request_id = ? AND type = ?", requestID, fileType).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
