package assignmentstore

import (
	"time"

	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Assignment) (id string, err error)
	GetOpenByRequest(requestID string) (rec *dbmodels.Assignment, err error)
	MarkAccepted(id string, at time.Time) error
	MarkRejected(id string, at time.Time) error
	CountOpenByTechnician(technicianID string) (count int64, err error)
	History(requestID string) (list []dbmodels.Assignment, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Assignment) (id string, err error) {
	err = i.db.
		Omit("Technician").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetOpenByRequest(requestID string) (rec *dbmodels.Assignment, err error) {
	rec = &dbmodels.Assignment{}
	err = i.db.
		Model(&dbmodels.Assignment{}).
		Where("request_id = ? AND accepted_at IS NULL AND rejected_at IS NULL", requestID).
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

func (i impl) MarkAccepted(id string, at time.Time) error {
	return i.db.
		Model(&dbmodels.Assignment{}).
		Where("id = ?", id).
		Update("accepted_at", at).
		Error
}

func (i impl) MarkRejected(id string, at time.Time) error {
	return i.db.
		Model(&dbmodels.Assignment{}).
		Where("id = ?", id).
		Update("rejected_at", at).
		Error
}

// CountOpenByTechnician counts assignments still in flight (pending or
// accepted on a request that has not closed); the matcher uses it as load.
func (i impl) CountOpenByTechnician(technicianID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Assignment{}).
		Joins("JOIN maintenance_requests ON maintenance_requests.id = assignments.request_id").
		Where("assignments.technician_id = ?", technicianID).
		Where("assignments.rejected_at IS NULL").
		Where("maintenance_requests.status NOT IN ?", []string{"HOAN_THANH", "HUY"}).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) History(requestID string) (list []dbmodels.Assignment, err error) {
	list = []dbmodels.Assignment{}
	err = i.db.
		Model(&dbmodels.Assignment{}).
		Where("request_id = ?", requestID).
		Preload("Technician").
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
