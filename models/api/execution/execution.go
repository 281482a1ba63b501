package executionapimodels

import (
	"time"

	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
)

type TaskCreateData struct {
	Content string `json:"content"`
}

func (t TaskCreateData) Validate() error {
	if t.Content == "" {
		return errors.New("task content is required")
	}
	return nil
}

// TaskEvidence is attached when a task is marked done.
type TaskEvidence struct {
	Images   []string `json:"images"`
	VideoRef *string  `json:"video_ref,omitempty"`
	Note     string   `json:"note"`
}

func (e TaskEvidence) Validate() error {
	if len(e.Images) > models.MaxAttachments {
		return errors.Errorf("at most %d images are allowed per task", models.MaxAttachments)
	}
	return nil
}

type TaskView struct {
	ID       string     `json:"id"`
	Content  string     `json:"content"`
	Done     bool       `json:"done"`
	DoneBy   *string    `json:"done_by,omitempty"`
	DoneAt   *time.Time `json:"done_at,omitempty"`
	Note     string     `json:"note,omitempty"`
	Images   []string   `json:"images,omitempty"`
	VideoRef *string    `json:"video_ref,omitempty"`
}

func TaskConvert(rec dbmodels.ExecutionTask) TaskView {
	return TaskView{
		ID:       rec.ID,
		Content:  rec.Content,
		Done:     rec.Done,
		DoneBy:   rec.DoneBy,
		DoneAt:   rec.DoneAt,
		Note:     rec.Note,
		Images:   rec.Images,
		VideoRef: rec.VideoRef,
	}
}

type ProgressView struct {
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	Ratio          float64 `json:"ratio"`
}

type SupportRequestData struct {
	TechnicianID string `json:"technician_id"`
	Reason       string `json:"reason"`
}

func (s SupportRequestData) Validate() error {
	if s.TechnicianID == "" {
		return errors.New("technician is required")
	}
	return nil
}

type SupportRequestView struct {
	ID           string                      `json:"id"`
	RequestedBy  string                      `json:"requested_by"`
	TechnicianID string                      `json:"technician_id"`
	Reason       string                      `json:"reason,omitempty"`
	Status       models.SupportRequestStatus `json:"status"`
	ResolvedBy   *string                     `json:"resolved_by,omitempty"`
	ResolvedAt   *time.Time                  `json:"resolved_at,omitempty"`
}

func SupportRequestConvert(rec dbmodels.SupportRequest) SupportRequestView {
	return SupportRequestView{
		ID:           rec.ID,
		RequestedBy:  rec.RequestedBy,
		TechnicianID: rec.TechnicianID,
		Reason:       rec.Reason,
		Status:       rec.Status,
		ResolvedBy:   rec.ResolvedBy,
		ResolvedAt:   rec.ResolvedAt,
	}
}
