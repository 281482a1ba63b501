package lifecycle

import (
	"maintenance-backend/models"
)

// Actor is who attempts a transition.
type Actor struct {
	ID   string
	Role models.UserRole
}

// Input is the request snapshot the decision is made against. It is plain
// data so the machine stays free of storage and clock concerns.
type Input struct {
	Status     models.RequestStatus
	CreatorID  string
	AssigneeID string // technician holding the open or accepted assignment
	HasSurvey  bool
	HasPlan    bool
	TasksDone  int
	TasksTotal int
}

// EffectKind names a side effect the caller must apply atomically with the
// status write.
type EffectKind string

const (
	EffectOpenAssignment   EffectKind = "open_assignment"
	EffectAcceptAssignment EffectKind = "accept_assignment"
	EffectRejectAssignment EffectKind = "reject_assignment"
	EffectCreateSurvey     EffectKind = "create_survey"
	EffectCreatePlan       EffectKind = "create_plan"
	EffectReplacePlan      EffectKind = "replace_plan"
	EffectLogRejection     EffectKind = "log_rejection"
	EffectCreateExecution  EffectKind = "create_execution"
	EffectCloseExecution   EffectKind = "close_execution"
	EffectReopenExecution  EffectKind = "reopen_execution"
	EffectRecordAcceptance EffectKind = "record_acceptance"
)

type Effect struct {
	Kind     EffectKind
	Gate     models.RejectionGate // set for log_rejection
	Accepted bool                 // set for record_acceptance
}

// Decision is the outcome of a legal transition: the state to move to and
// the effects to apply with it.
type Decision struct {
	Next    models.RequestStatus
	Effects []Effect
}

type rule struct {
	from  models.RequestStatus
	to    models.RequestStatus
	roles []models.UserRole
	// assignee restricts the event to the technician holding the
	// assignment; creator restricts it to the request creator (admins are
	// always allowed where listed in roles).
	assigneeOnly   bool
	creatorOrAdmin bool
	guard          func(in Input) error
	effects        []Effect
}

var rules = map[models.TransitionEvent]rule{
	models.EventAssign: {
		from:  models.StatusAwaitingAssignment,
		to:    models.StatusAssignmentPending,
		roles: []models.UserRole{models.AdminRole},
		guard: func(in Input) error {
			if in.AssigneeID != "" {
				return models.NewPreconditionFailed("request already has an open assignment")
			}
			return nil
		},
		effects: []Effect{{Kind: EffectOpenAssignment}},
	},
	models.EventTechnicianAccept: {
		from:         models.StatusAssignmentPending,
		to:           models.StatusConfirmed,
		roles:        []models.UserRole{models.TechnicianRole},
		assigneeOnly: true,
		effects:      []Effect{{Kind: EffectAcceptAssignment}},
	},
	models.EventTechnicianReject: {
		from:         models.StatusAssignmentPending,
		to:           models.StatusAwaitingAssignment,
		roles:        []models.UserRole{models.TechnicianRole},
		assigneeOnly: true,
		effects: []Effect{
			{Kind: EffectRejectAssignment},
			{Kind: EffectLogRejection, Gate: models.GateAssignment},
		},
	},
	models.EventSubmitSurvey: {
		from:         models.StatusConfirmed,
		to:           models.StatusSurveyed,
		roles:        []models.UserRole{models.TechnicianRole},
		assigneeOnly: true,
		guard: func(in Input) error {
			if in.HasSurvey {
				return models.NewPreconditionFailed("survey already submitted")
			}
			return nil
		},
		effects: []Effect{{Kind: EffectCreateSurvey}},
	},
	models.EventSubmitPlan: {
		from:         models.StatusSurveyed,
		to:           models.StatusPlanned,
		roles:        []models.UserRole{models.TechnicianRole},
		assigneeOnly: true,
		guard: func(in Input) error {
			if !in.HasSurvey {
				return models.NewPreconditionFailed("a survey must precede the plan")
			}
			if in.HasPlan {
				return models.NewPreconditionFailed("plan already submitted")
			}
			return nil
		},
		effects: []Effect{{Kind: EffectCreatePlan}},
	},
	models.EventApprovePlan: {
		from:  models.StatusPlanned,
		to:    models.StatusPlanApproved,
		roles: []models.UserRole{models.AdminRole},
	},
	models.EventRejectPlan: {
		from:    models.StatusPlanned,
		to:      models.StatusPlanRejected,
		roles:   []models.UserRole{models.AdminRole},
		effects: []Effect{{Kind: EffectLogRejection, Gate: models.GatePlanApproval}},
	},
	models.EventResubmitPlan: {
		from:         models.StatusPlanRejected,
		to:           models.StatusPlanned,
		roles:        []models.UserRole{models.TechnicianRole},
		assigneeOnly: true,
		guard: func(in Input) error {
			if !in.HasPlan {
				return models.NewPreconditionFailed("no plan to resubmit")
			}
			return nil
		},
		effects: []Effect{{Kind: EffectReplacePlan}},
	},
	models.EventStartExecution: {
		from:         models.StatusPlanApproved,
		to:           models.StatusInMaintenance,
		roles:        []models.UserRole{models.TechnicianRole},
		assigneeOnly: true,
		guard: func(in Input) error {
			if !in.HasPlan {
				return models.NewPreconditionFailed("an approved plan is required")
			}
			return nil
		},
		effects: []Effect{{Kind: EffectCreateExecution}},
	},
	models.EventCompleteExecution: {
		from:         models.StatusInMaintenance,
		to:           models.StatusAwaitingAcceptance,
		roles:        []models.UserRole{models.TechnicianRole},
		assigneeOnly: true,
		guard: func(in Input) error {
			if in.TasksTotal == 0 {
				return models.NewPreconditionFailed("the execution checklist is empty")
			}
			if in.TasksDone < in.TasksTotal {
				return models.NewPreconditionFailed("%d of %d tasks are done", in.TasksDone, in.TasksTotal)
			}
			return nil
		},
		effects: []Effect{{Kind: EffectCloseExecution}},
	},
	models.EventApproveAcceptance: {
		from:           models.StatusAwaitingAcceptance,
		to:             models.StatusCompleted,
		roles:          []models.UserRole{models.AdminRole, models.CustomerRole},
		creatorOrAdmin: true,
		effects:        []Effect{{Kind: EffectRecordAcceptance, Accepted: true}},
	},
	// A rejected acceptance passes through TU_CHOI_NGHIEM_THU and lands
	// back in DANG_BAO_TRI: the rejection row and the ledger entry carry
	// the record, the request itself goes straight back to work.
	models.EventRejectAcceptance: {
		from:           models.StatusAwaitingAcceptance,
		to:             models.StatusInMaintenance,
		roles:          []models.UserRole{models.AdminRole, models.CustomerRole},
		creatorOrAdmin: true,
		effects: []Effect{
			{Kind: EffectRecordAcceptance, Accepted: false},
			{Kind: EffectLogRejection, Gate: models.GateAcceptance},
			{Kind: EffectReopenExecution},
		},
	},
}

// Cancel is handled outside the rules table: it is legal from every
// non-terminal state, and only for admins.
func decideCancel(actor Actor) (Decision, error) {
	if actor.Role != models.AdminRole {
		return Decision{}, models.NewForbidden("role %v may not cancel requests", actor.Role)
	}
	return Decision{Next: models.StatusCancelled}, nil
}

// Decide evaluates one transition attempt. It is pure: no storage, no
// clock, no side effects. Errors are always taxonomy errors.
func Decide(in Input, event models.TransitionEvent, actor Actor) (Decision, error) {
	if in.Status.IsTerminal() {
		return Decision{}, models.NewTerminalState(in.Status)
	}
	if event == models.EventCancel {
		return decideCancel(actor)
	}
	r, known := rules[event]
	if !known {
		return Decision{}, models.NewInvalidTransition(in.Status, event)
	}
	if r.from != in.Status {
		return Decision{}, models.NewInvalidTransition(in.Status, event)
	}
	if !roleAllowed(r.roles, actor.Role) {
		return Decision{}, models.NewForbidden("role %v may not perform %v", actor.Role, event)
	}
	if r.assigneeOnly && actor.Role == models.TechnicianRole && actor.ID != in.AssigneeID {
		return Decision{}, models.NewForbidden("only the assigned technician may perform %v", event)
	}
	if r.creatorOrAdmin && actor.Role == models.CustomerRole && actor.ID != in.CreatorID {
		return Decision{}, models.NewForbidden("only the request creator may perform %v", event)
	}
	if r.guard != nil {
		if err := r.guard(in); err != nil {
			return Decision{}, err
		}
	}
	return Decision{Next: r.to, Effects: r.effects}, nil
}

func roleAllowed(roles []models.UserRole, role models.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
