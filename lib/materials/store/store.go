package materialsstore

import (
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	CreateLines(lines []dbmodels.MaterialLine) error
	ListByPlan(planID string) (list []dbmodels.MaterialLine, err error)
	ListByExecution(executionID string) (list []dbmodels.MaterialLine, err error)
	DeleteByPlan(planID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateLines(lines []dbmodels.MaterialLine) error {
	if len(lines) == 0 {
		return nil
	}
	return i.db.Create(&lines).Error
}

func (i impl) ListByPlan(planID string) (list []dbmodels.MaterialLine, err error) {
	list = []dbmodels.MaterialLine{}
	err = i.db.
		Model(&dbmodels.MaterialLine{}).
		Where("plan_id = ?", planID).
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

func (i impl) ListByExecution(executionID string) (list []dbmodels.MaterialLine, err error) {
	list = []dbmodels.MaterialLine{}
	err = i.db.
		Model(&dbmodels.MaterialLine{}).
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

// DeleteByPlan clears proposal lines before a resubmitted plan rewrites them.
func (i impl) DeleteByPlan(planID string) error {
	return i.db.
		Where("plan_id = ?", planID).
		Delete(&dbmodels.MaterialLine{}).
		Error
}
