package requeststore

import (
	"maintenance-backend/models"
	requestapimodels "maintenance-backend/models/api/request"
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.MaintenanceRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.MaintenanceRequest, err error)
	List(filter requestapimodels.RequestListFilter) (list []dbmodels.MaintenanceRequest, err error)
	ListCount(filter requestapimodels.RequestListFilter) (count int64, err error)
	ListAwaitingAssignment() (list []dbmodels.MaintenanceRequest, err error)
	Update(id string, updMap map[string]interface{}) error
	UpdateStatusFrom(id string, from, to models.RequestStatus) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.MaintenanceRequest) (id string, err error) {
	err = i.db.
		Omit("Device", "IssueType", "Assignments", "Survey", "Plan", "Execution").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (rec *dbmodels.MaintenanceRequest, err error) {
	rec = &dbmodels.MaintenanceRequest{}
	err = i.db.
		Model(&dbmodels.MaintenanceRequest{}).
		Where("id = ?", id).
		Preload("Device").
		Preload("IssueType").
		Preload("Assignments").
		Preload("Survey").
		Preload("Plan").
		Preload("Plan.Materials").
		Preload("Execution").
		Preload("Execution.Tasks").
		Preload("Execution.SupportRequests").
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

func (i impl) applyFilter(tx *gorm.DB, filter requestapimodels.RequestListFilter) *gorm.DB {
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		tx = tx.Where("priority = ?", filter.Priority)
	}
	if filter.DeviceID != "" {
		tx = tx.Where("device_id = ?", filter.DeviceID)
	}
	if filter.CreatorID != "" {
		tx = tx.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.Search != "" {
		tx = tx.Where("request_code ILIKE ? OR note ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	return tx
}

func (i impl) ListCount(filter requestapimodels.RequestListFilter) (count int64, err error) {
	tx := i.applyFilter(i.db.Model(&dbmodels.MaintenanceRequest{}), filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) List(filter requestapimodels.RequestListFilter) (list []dbmodels.MaintenanceRequest, err error) {
	list = []dbmodels.MaintenanceRequest{}
	tx := i.applyFilter(i.db.Model(&dbmodels.MaintenanceRequest{}), filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Preload("Device").
		Preload("IssueType").
		Preload("Assignments").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
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

// ListAwaitingAssignment returns the auto-assign batch, ordered by priority
// desc then creation time asc.
func (i impl) ListAwaitingAssignment() (list []dbmodels.MaintenanceRequest, err error) {
	list = []dbmodels.MaintenanceRequest{}
	err = i.db.
		Model(&dbmodels.MaintenanceRequest{}).
		Where("status = ?", models.StatusAwaitingAssignment).
		Preload("IssueType").
		Order(prioritySQLOrder).
		Order("created_at asc").
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

const prioritySQLOrder = "CASE priority " +
	"WHEN 'URGENT' THEN 4 WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 1 ELSE 0 END desc"

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.MaintenanceRequest{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

// UpdateStatusFrom is the optimistic write: the UPDATE is conditioned on
// the status observed at decision time. A lost race affects zero rows and
// surfaces as Conflict.
func (i impl) UpdateStatusFrom(id string, from, to models.RequestStatus) error {
	tx := i.db.
		Model(&dbmodels.MaintenanceRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewConflict("request %v changed concurrently, expected status %v", id, from)
	}
	return nil
}
