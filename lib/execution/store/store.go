package executionstore

import (
	"time"

	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Execution) (id string, err error)
	GetByRequest(requestID string) (rec *dbmodels.Execution, err error)
	SetEndAt(id string, at *time.Time) error

	CreateTask(rec dbmodels.ExecutionTask) (id string, err error)
	GetTask(id string) (rec *dbmodels.ExecutionTask, err error)
	UpdateTask(id string, updMap map[string]interface{}) error
	ListTasks(executionID string) (list []dbmodels.ExecutionTask, err error)

	CreateSupportRequest(rec dbmodels.SupportRequest) (id string, err error)
	GetSupportRequest(id string) (rec *dbmodels.SupportRequest, err error)
	UpdateSupportRequest(id string, updMap map[string]interface{}) error
	ListSupportRequests(executionID string) (list []dbmodels.SupportRequest, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Execution) (id string, err error) {
	err = i.db.
		Omit("Tasks", "SupportRequests", "Materials").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByRequest(requestID string) (rec *dbmodels.Execution, err error) {
	rec = &dbmodels.Execution{}
	err = i.db.
		Model(&dbmodels.Execution{}).
		Where("request_id = ?", requestID).
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("execution_tasks.created_at")
		}).
		Preload("SupportRequests").
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

// SetEndAt with nil reopens the execution after a rejected acceptance.
func (i impl) SetEndAt(id string, at *time.Time) error {
	return i.db.
		Model(&dbmodels.Execution{}).
		Where("id = ?", id).
		Update("end_at", at).
		Error
}

func (i impl) CreateTask(rec dbmodels.ExecutionTask) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetTask(id string) (rec *dbmodels.ExecutionTask, err error) {
	rec = &dbmodels.ExecutionTask{}
	err = i.db.
		Model(&dbmodels.ExecutionTask{}).
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

func (i impl) UpdateTask(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.ExecutionTask{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) ListTasks(executionID string) (list []dbmodels.ExecutionTask, err error) {
	list = []dbmodels.ExecutionTask{}
	err = i.db.
		Model(&dbmodels.ExecutionTask{}).
		Where("execution_id = ?", executionID).
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

func (i impl) CreateSupportRequest(rec dbmodels.SupportRequest) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetSupportRequest(id string) (rec *dbmodels.SupportRequest, err error) {
	rec = &dbmodels.SupportRequest{}
	err = i.db.
		Model(&dbmodels.SupportRequest{}).
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

func (i impl) UpdateSupportRequest(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.SupportRequest{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) ListSupportRequests(executionID string) (list []dbmodels.SupportRequest, err error) {
	list = []dbmodels.SupportRequest{}
	err = i.db.
		Model(&dbmodels.SupportRequest{}).
		Where("execution_id = ?", executionID).
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
