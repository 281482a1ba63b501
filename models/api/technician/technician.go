package technicianapimodels

import (
	"time"

	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
)

type TechnicianData struct {
	FullName string   `json:"full_name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Skills   []string `json:"skills"`
	Active   *bool    `json:"active,omitempty"`
}

func (t TechnicianData) Validate() error {
	if t.FullName == "" {
		return errors.New("full name is required")
	}
	return nil
}

type ShiftData struct {
	Status  models.ShiftStatus `json:"status"`
	StartAt time.Time          `json:"start_at"`
	EndAt   time.Time          `json:"end_at"`
}

func (s ShiftData) Validate() error {
	if s.Status == "" {
		return errors.New("shift status is required")
	}
	if !s.EndAt.After(s.StartAt) {
		return errors.New("shift must end after it starts")
	}
	return nil
}

type TechnicianFind struct {
	apimodels.Pagination
	Search string `json:"search"`
}

type TechnicianView struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name"`
	Phone    string   `json:"phone,omitempty"`
	Email    string   `json:"email,omitempty"`
	Skills   []string `json:"skills"`
	Active   bool     `json:"active"`
}

func TechnicianConvert(rec dbmodels.Technician) TechnicianView {
	return TechnicianView{
		ID:       rec.ID,
		FullName: rec.FullName,
		Phone:    rec.Phone,
		Email:    rec.Email,
		Skills:   rec.Skills,
		Active:   rec.Active,
	}
}

type ShiftView struct {
	ID      string             `json:"id"`
	Status  models.ShiftStatus `json:"status"`
	StartAt time.Time          `json:"start_at"`
	EndAt   time.Time          `json:"end_at"`
}

// AssignmentResult is one outcome of an auto-assign run.
type AssignmentResult struct {
	RequestID    string `json:"request_id"`
	RequestCode  string `json:"request_code"`
	TechnicianID string `json:"technician_id,omitempty"`
	Assigned     bool   `json:"assigned"`
	SkipReason   string `json:"skip_reason,omitempty"`
}
