package requestapimodels

import (
	"maintenance-backend/models"

	"github.com/pkg/errors"
)

// TransitionPayload carries the event-specific data of a transition call.
// Only the member matching the event is consulted.
type TransitionPayload struct {
	Assign     *AssignData     `json:"assign,omitempty"`
	Rejection  *RejectionData  `json:"rejection,omitempty"`
	Survey     *SurveyData     `json:"survey,omitempty"`
	Plan       *PlanData       `json:"plan,omitempty"`
	Acceptance *AcceptanceData `json:"acceptance,omitempty"`
}

type AssignData struct {
	TechnicianID string `json:"technician_id"`
	IsMain       bool   `json:"is_main"`
}

func (a AssignData) Validate() error {
	if a.TechnicianID == "" {
		return errors.New("technician is required")
	}
	return nil
}

type RejectionData struct {
	ReasonID string `json:"reason_id"`
	Note     string `json:"note"`
}

func (r RejectionData) Validate() error {
	if r.ReasonID == "" {
		return errors.New("reject reason is required")
	}
	return nil
}

type SurveyData struct {
	CauseID     string                 `json:"cause_id"`
	DamageLevel models.DamageLevel     `json:"damage_level"`
	TypeActual  models.MaintenanceType `json:"type_actual"`
	ActualIssue string                 `json:"actual_issue"`
	Attachments []string               `json:"attachments"`
}

func (s SurveyData) Validate() error {
	if s.DamageLevel == "" {
		return errors.New("damage level is required")
	}
	if len(s.Attachments) > models.MaxAttachments {
		return errors.Errorf("at most %d attachments are allowed", models.MaxAttachments)
	}
	return nil
}

type PlanData struct {
	SolutionRefs []string           `json:"solution_refs"`
	UseMaterial  bool               `json:"use_material"`
	Materials    []MaterialLineData `json:"materials"`
	Note         string             `json:"note"`
}

func (p PlanData) Validate() error {
	if len(p.SolutionRefs) == 0 {
		return errors.New("at least one solution is required")
	}
	if p.UseMaterial && len(p.Materials) == 0 {
		return errors.New("material lines are required when the plan uses materials")
	}
	for _, line := range p.Materials {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type MaterialLineData struct {
	PartID        string  `json:"part_id"`
	Quantity      int     `json:"quantity"`
	IsShortage    bool    `json:"is_shortage"`
	IsNewProposal bool    `json:"is_new_proposal"`
	WarehouseID   *string `json:"warehouse_id,omitempty"`
}

func (m MaterialLineData) Validate() error {
	if m.PartID == "" {
		return errors.New("part reference is required")
	}
	if m.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}

type AcceptanceData struct {
	Rating          int    `json:"rating"`
	IsOnTime        bool   `json:"is_on_time"`
	IsProfessional  bool   `json:"is_professional"`
	IsDeviceWorking bool   `json:"is_device_working"`
	Comment         string `json:"comment"`
}

func (a AcceptanceData) Validate() error {
	if a.Rating < 0 || a.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	return nil
}

// TransitionResult is what the lifecycle returns to callers on success.
type TransitionResult struct {
	NewStatus  models.RequestStatus `json:"new_status"`
	StatusName string               `json:"status_name"`
}

type RejectionLogView struct {
	ID         string               `json:"id"`
	Gate       models.RejectionGate `json:"gate"`
	ReasonID   string               `json:"reason_id"`
	ReasonName string               `json:"reason_name,omitempty"`
	Note       string               `json:"note,omitempty"`
	RejectedBy string               `json:"rejected_by"`
	RejectedAt string               `json:"rejected_at"`
}
