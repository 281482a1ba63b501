package rejectreasonstore

import (
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.RejectReason) (id string, err error)
	GetByID(id string) (rec *dbmodels.RejectReason, err error)
	List(gate models.RejectionGate) (list []dbmodels.RejectReason, err error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RejectReason) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (rec *dbmodels.RejectReason, err error) {
	rec = &dbmodels.RejectReason{}
	err = i.db.
		Model(&dbmodels.RejectReason{}).
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

func (i impl) List(gate models.RejectionGate) (list []dbmodels.RejectReason, err error) {
	list = []dbmodels.RejectReason{}
	tx := i.db.
		Model(&dbmodels.RejectReason{})
	if gate != "" {
		tx = tx.Where("gate = ?", gate)
	}
	err = tx.
		Order("name").
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

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.RejectReason{}).
		Error
}
