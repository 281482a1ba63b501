package lifecycle

import (
	"time"

	acceptancestore "maintenance-backend/lib/acceptance/store"
	assignmentstore "maintenance-backend/lib/assignment/store"
	rejectreasonstore "maintenance-backend/lib/dicts/reject-reason/store"
	executionstore "maintenance-backend/lib/execution/store"
	materialsstore "maintenance-backend/lib/materials/store"
	planstore "maintenance-backend/lib/plan/store"
	rejectionstore "maintenance-backend/lib/rejection/store"
	requeststore "maintenance-backend/lib/request/store"
	surveystore "maintenance-backend/lib/survey/store"
	technicianstore "maintenance-backend/lib/technician/store"
	"maintenance-backend/models"
	requestapimodels "maintenance-backend/models/api/request"
	dbmodels "maintenance-backend/models/db"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// txHandler carries the per-transaction store set. Tests construct it
// directly with stub providers.
type txHandler struct {
	requests      requeststore.Provider
	assignments   assignmentstore.Provider
	rejections    rejectionstore.Provider
	surveys       surveystore.Provider
	plans         planstore.Provider
	materials     materialsstore.Provider
	executions    executionstore.Provider
	acceptances   acceptancestore.Provider
	technicians   technicianstore.Provider
	rejectReasons rejectreasonstore.Provider
	now           func() time.Time
}

func newTxHandler(tx *gorm.DB) *txHandler {
	return &txHandler{
		requests:      requeststore.NewInstance(tx),
		assignments:   assignmentstore.NewInstance(tx),
		rejections:    rejectionstore.NewInstance(tx),
		surveys:       surveystore.NewInstance(tx),
		plans:         planstore.NewInstance(tx),
		materials:     materialsstore.NewInstance(tx),
		executions:    executionstore.NewInstance(tx),
		acceptances:   acceptancestore.NewInstance(tx),
		technicians:   technicianstore.NewInstance(tx),
		rejectReasons: rejectreasonstore.NewInstance(tx),
		now:           time.Now,
	}
}

// currentAssignee is the technician whose assignment has not been rejected:
// either awaiting a decision or already accepted.
func currentAssignee(rec *dbmodels.MaintenanceRequest) string {
	for idx := range rec.Assignments {
		if rec.Assignments[idx].RejectedAt == nil {
			return rec.Assignments[idx].TechnicianID
		}
	}
	return ""
}

func buildInput(rec *dbmodels.MaintenanceRequest) Input {
	in := Input{
		Status:     rec.Status,
		CreatorID:  rec.CreatorID,
		AssigneeID: currentAssignee(rec),
		HasSurvey:  rec.Survey != nil,
		HasPlan:    rec.Plan != nil,
	}
	if rec.Execution != nil {
		in.TasksDone, in.TasksTotal = rec.Execution.Progress()
	}
	return in
}

// validatePayload checks that the member the event needs is present and
// well-formed before the decision is made.
func validatePayload(event models.TransitionEvent, payload requestapimodels.TransitionPayload) error {
	switch event {
	case models.EventAssign:
		if payload.Assign == nil {
			return models.NewPreconditionFailed("assign data is required")
		}
		if err := payload.Assign.Validate(); err != nil {
			return models.NewPreconditionFailed("%v", err)
		}
	case models.EventTechnicianReject, models.EventRejectPlan:
		if payload.Rejection == nil {
			return models.NewPreconditionFailed("a reject reason is required")
		}
		if err := payload.Rejection.Validate(); err != nil {
			return models.NewPreconditionFailed("%v", err)
		}
	case models.EventSubmitSurvey:
		if payload.Survey == nil {
			return models.NewPreconditionFailed("survey data is required")
		}
		if err := payload.Survey.Validate(); err != nil {
			return models.NewPreconditionFailed("%v", err)
		}
	case models.EventSubmitPlan, models.EventResubmitPlan:
		if payload.Plan == nil {
			return models.NewPreconditionFailed("plan data is required")
		}
		if err := payload.Plan.Validate(); err != nil {
			return models.NewPreconditionFailed("%v", err)
		}
	case models.EventApproveAcceptance:
		if payload.Acceptance == nil {
			return models.NewPreconditionFailed("acceptance data is required")
		}
		if err := payload.Acceptance.Validate(); err != nil {
			return models.NewPreconditionFailed("%v", err)
		}
	case models.EventRejectAcceptance:
		if payload.Acceptance == nil {
			return models.NewPreconditionFailed("acceptance data is required")
		}
		if err := payload.Acceptance.Validate(); err != nil {
			return models.NewPreconditionFailed("%v", err)
		}
		if payload.Rejection == nil {
			return models.NewPreconditionFailed("a reject reason is required")
		}
		if err := payload.Rejection.Validate(); err != nil {
			return models.NewPreconditionFailed("%v", err)
		}
	}
	return nil
}

func (h *txHandler) transition(requestID string, event models.TransitionEvent, actor Actor, payload requestapimodels.TransitionPayload) (result requestapimodels.TransitionResult, notices []dbmodels.PushData, err error) {
	rec, err := h.requests.GetByID(requestID)
	if err != nil {
		return result, nil, err
	}
	if rec == nil {
		return result, nil, models.NewReferentialIntegrity("request %v not found", requestID)
	}
	if err = validatePayload(event, payload); err != nil {
		return result, nil, err
	}
	decision, err := Decide(buildInput(rec), event, actor)
	if err != nil {
		return result, nil, err
	}
	for _, effect := range decision.Effects {
		if err = h.apply(rec, effect, actor, payload); err != nil {
			return result, nil, err
		}
	}
	// Conditioned on the status read above: a concurrent writer makes this
	// affect zero rows and the whole transaction rolls back with Conflict.
	if err = h.requests.UpdateStatusFrom(rec.ID, rec.Status, decision.Next); err != nil {
		return result, nil, err
	}
	result = requestapimodels.TransitionResult{
		NewStatus:  decision.Next,
		StatusName: decision.Next.ToHuman(),
	}
	return result, h.buildNotices(rec, event, actor, payload, decision.Next), nil
}

func (h *txHandler) apply(rec *dbmodels.MaintenanceRequest, effect Effect, actor Actor, payload requestapimodels.TransitionPayload) error {
	now := h.now()
	switch effect.Kind {
	case EffectOpenAssignment:
		tech, err := h.technicians.GetByID(payload.Assign.TechnicianID)
		if err != nil {
			return err
		}
		if tech == nil {
			return models.NewReferentialIntegrity("technician %v not found", payload.Assign.TechnicianID)
		}
		if !tech.Active {
			return models.NewPreconditionFailed("technician %v is not active", tech.FullName)
		}
		_, err = h.assignments.Create(dbmodels.Assignment{
			RequestID:    rec.ID,
			TechnicianID: tech.ID,
			AssignedBy:   actor.ID,
			AssignedAt:   now,
			IsMain:       payload.Assign.IsMain,
		})
		return err

	case EffectAcceptAssignment:
		open := rec.ActiveAssignment()
		if open == nil {
			return models.NewPreconditionFailed("no open assignment to accept")
		}
		return h.assignments.MarkAccepted(open.ID, now)

	case EffectRejectAssignment:
		open := rec.ActiveAssignment()
		if open == nil {
			return models.NewPreconditionFailed("no open assignment to reject")
		}
		return h.assignments.MarkRejected(open.ID, now)

	case EffectLogRejection:
		reason, err := h.rejectReasons.GetByID(payload.Rejection.ReasonID)
		if err != nil {
			return err
		}
		if reason == nil {
			return models.NewReferentialIntegrity("reject reason %v not found", payload.Rejection.ReasonID)
		}
		if reason.Gate != effect.Gate {
			return models.NewPreconditionFailed("reject reason %v does not apply at this stage", reason.Name)
		}
		_, err = h.rejections.Create(dbmodels.RejectionLogEntry{
			RequestID:      rec.ID,
			Gate:           effect.Gate,
			RejectReasonID: reason.ID,
			Note:           payload.Rejection.Note,
			RejectedBy:     actor.ID,
			RejectedAt:     now,
		})
		return err

	case EffectCreateSurvey:
		data := payload.Survey
		_, err := h.surveys.Create(dbmodels.Survey{
			RequestID:    rec.ID,
			CauseID:      data.CauseID,
			DamageLevel:  data.DamageLevel,
			TypeActual:   data.TypeActual,
			ActualIssue:  data.ActualIssue,
			Attachments:  pq.StringArray(data.Attachments),
			TechnicianID: actor.ID,
			SurveyDate:   now,
		})
		return err

	case EffectCreatePlan:
		data := payload.Plan
		planID, err := h.plans.Create(dbmodels.Plan{
			RequestID:    rec.ID,
			SolutionRefs: pq.StringArray(data.SolutionRefs),
			UseMaterial:  data.UseMaterial,
			CreatedBy:    actor.ID,
			Note:         data.Note,
		})
		if err != nil {
			return err
		}
		return h.materials.CreateLines(planLines(planID, data.Materials))

	case EffectReplacePlan:
		data := payload.Plan
		err := h.plans.Update(rec.Plan.ID, map[string]interface{}{
			"solution_refs": pq.StringArray(data.SolutionRefs),
			"use_material":  data.UseMaterial,
			"created_by":    actor.ID,
			"note":          data.Note,
		})
		if err != nil {
			return err
		}
		if err = h.materials.DeleteByPlan(rec.Plan.ID); err != nil {
			return err
		}
		return h.materials.CreateLines(planLines(rec.Plan.ID, data.Materials))

	case EffectCreateExecution:
		_, err := h.executions.Create(dbmodels.Execution{
			RequestID:        rec.ID,
			MainTechnicianID: actor.ID,
			StartAt:          now,
		})
		return err

	case EffectCloseExecution:
		return h.executions.SetEndAt(rec.Execution.ID, &now)

	case EffectReopenExecution:
		return h.executions.SetEndAt(rec.Execution.ID, nil)

	case EffectRecordAcceptance:
		data := payload.Acceptance
		_, err := h.acceptances.Create(dbmodels.Acceptance{
			RequestID:       rec.ID,
			ApproverType:    actor.Role,
			ApproverID:      actor.ID,
			Accepted:        effect.Accepted,
			Rating:          data.Rating,
			IsOnTime:        data.IsOnTime,
			IsProfessional:  data.IsProfessional,
			IsDeviceWorking: data.IsDeviceWorking,
			Comment:         data.Comment,
		})
		return err
	}
	return nil
}

func planLines(planID string, lines []requestapimodels.MaterialLineData) []dbmodels.MaterialLine {
	out := make([]dbmodels.MaterialLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, dbmodels.MaterialLine{
			PlanID:        &planID,
			PartID:        l.PartID,
			Quantity:      l.Quantity,
			IsShortage:    l.IsShortage,
			IsNewProposal: l.IsNewProposal,
			WarehouseID:   l.WarehouseID,
		})
	}
	return out
}

func (h *txHandler) buildNotices(rec *dbmodels.MaintenanceRequest, event models.TransitionEvent, actor Actor, payload requestapimodels.TransitionPayload, next models.RequestStatus) []dbmodels.PushData {
	notices := []dbmodels.PushData{}
	statusMsg := rec.RequestCode + ": " + next.ToHuman()
	if rec.CreatorID != "" && rec.CreatorID != actor.ID {
		notices = append(notices, dbmodels.PushData{
			ToUserID:  rec.CreatorID,
			RequestID: rec.ID,
			Code:      dbmodels.PushStatusChanged,
			Msg:       statusMsg,
		})
	}
	assignee := currentAssignee(rec)
	switch event {
	case models.EventAssign:
		notices = append(notices, dbmodels.PushData{
			ToUserID:  payload.Assign.TechnicianID,
			RequestID: rec.ID,
			Code:      dbmodels.PushRequestAssigned,
			Msg:       statusMsg,
		})
	case models.EventApprovePlan, models.EventRejectPlan:
		if assignee != "" {
			notices = append(notices, dbmodels.PushData{
				ToUserID:  assignee,
				RequestID: rec.ID,
				Code:      dbmodels.PushPlanDecision,
				Msg:       statusMsg,
			})
		}
	case models.EventApproveAcceptance, models.EventRejectAcceptance:
		if assignee != "" {
			notices = append(notices, dbmodels.PushData{
				ToUserID:  assignee,
				RequestID: rec.ID,
				Code:      dbmodels.PushAcceptanceResult,
				Msg:       statusMsg,
			})
		}
	}
	return notices
}
