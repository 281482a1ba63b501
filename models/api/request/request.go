package requestapimodels

import (
	"time"

	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
)

type RequestCreateData struct {
	CreatorType    models.CreatorType     `json:"creator_type"`
	DeviceID       string                 `json:"device_id"`
	IssueTypeID    string                 `json:"issue_type_id"`
	Priority       models.PriorityLevel   `json:"priority"`
	Type           models.MaintenanceType `json:"type"`
	LocationDetail string                 `json:"location_detail"`
	Note           string                 `json:"note"`
	Attachments    []string               `json:"attachments"`
}

func (r RequestCreateData) Validate() error {
	if r.DeviceID == "" {
		return errors.New("device is required")
	}
	if r.IssueTypeID == "" {
		return errors.New("issue type is required")
	}
	if r.Priority == "" {
		return errors.New("priority is required")
	}
	if len(r.Attachments) > models.MaxAttachments {
		return errors.Errorf("at most %d attachments are allowed", models.MaxAttachments)
	}
	return nil
}

type RequestView struct {
	ID             string                 `json:"id"`
	RequestCode    string                 `json:"request_code"`
	CreatorType    models.CreatorType     `json:"creator_type"`
	CreatorID      string                 `json:"creator_id"`
	DeviceID       string                 `json:"device_id"`
	DeviceName     string                 `json:"device_name,omitempty"`
	IssueTypeID    string                 `json:"issue_type_id"`
	IssueTypeName  string                 `json:"issue_type_name,omitempty"`
	Priority       models.PriorityLevel   `json:"priority"`
	Type           models.MaintenanceType `json:"type"`
	Status         models.RequestStatus   `json:"status"`
	StatusName     string                 `json:"status_name"`
	LocationDetail string                 `json:"location_detail"`
	Note           string                 `json:"note"`
	Attachments    []string               `json:"attachments"`
	TechnicianID   string                 `json:"technician_id,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func RequestConvert(rec dbmodels.MaintenanceRequest) RequestView {
	view := RequestView{
		ID:             rec.ID,
		RequestCode:    rec.RequestCode,
		CreatorType:    rec.CreatorType,
		CreatorID:      rec.CreatorID,
		DeviceID:       rec.DeviceID,
		IssueTypeID:    rec.IssueTypeID,
		Priority:       rec.Priority,
		Type:           rec.Type,
		Status:         rec.Status,
		StatusName:     rec.Status.ToHuman(),
		LocationDetail: rec.LocationDetail,
		Note:           rec.Note,
		Attachments:    rec.Attachments,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if rec.Device != nil {
		view.DeviceName = rec.Device.Name
	}
	if rec.IssueType != nil {
		view.IssueTypeName = rec.IssueType.Name
	}
	if assignment := rec.ActiveAssignment(); assignment != nil {
		view.TechnicianID = assignment.TechnicianID
	}
	return view
}

type RequestListFilter struct {
	apimodels.Pagination
	dbmodels.RequestFilter
}
