package rejectionstore

import (
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Insert-only store. No Update or Delete exists on purpose.
type Provider interface {
	Create(rec dbmodels.RejectionLogEntry) (id string, err error)
	Latest(requestID string, gate models.RejectionGate) (rec *dbmodels.RejectionLogEntry, err error)
	History(requestID string) (list []dbmodels.RejectionLogEntry, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RejectionLogEntry) (id string, err error) {
	err = i.db.
		Omit("RejectReason").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Latest(requestID string, gate models.RejectionGate) (rec *dbmodels.RejectionLogEntry, err error) {
	rec = &dbmodels.RejectionLogEntry{}
	err = i.db.
		Model(&dbmodels.RejectionLogEntry{}).
		Where("request_id = ? AND gate = ?", requestID, gate).
		Preload("RejectReason").
		Order("rejected_at desc").
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

func (i impl) History(requestID string) (list []dbmodels.RejectionLogEntry, err error) {
	list = []dbmodels.RejectionLogEntry{}
	err = i.db.
		Model(&dbmodels.RejectionLogEntry{}).
		Where("request_id = ?", requestID).
		Preload("RejectReason").
		Order("rejected_at").
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
