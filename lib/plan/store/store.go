package planstore

import (
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	GetByRequest(requestID string) (rec *dbmodels.Plan, err error)
	Create(rec dbmodels.Plan) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByRequest(requestID string) (rec *dbmodels.Plan, err error) {
	rec = &dbmodels.Plan{}
	err = i.db.
		Model(&dbmodels.Plan{}).
		Where("request_id = ?", requestID).
		Preload("Materials").
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

func (i impl) Create(rec dbmodels.Plan) (id string, err error) {
	err = i.db.
		Omit("Materials").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Plan{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}
