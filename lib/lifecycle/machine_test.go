package lifecycle

import (
	"testing"

	"maintenance-backend/models"

	"github.com/stretchr/testify/require"
)

const (
	testCreator    = "cust-1"
	testTechnician = "tech-1"
	testAdmin      = "adm-1"
)

// inputFor builds a snapshot that satisfies every guard of the given state,
// so the grid test isolates the (state, event) legality itself.
func inputFor(status models.RequestStatus) Input {
	in := Input{
		Status:     status,
		CreatorID:  testCreator,
		AssigneeID: testTechnician,
	}
	switch status {
	case models.StatusAwaitingAssignment:
		in.AssigneeID = ""
	case models.StatusSurveyed:
		in.HasSurvey = true
	case models.StatusPlanned, models.StatusPlanRejected, models.StatusPlanApproved:
		in.HasSurvey = true
		in.HasPlan = true
	case models.StatusInMaintenance, models.StatusAwaitingAcceptance:
		in.HasSurvey = true
		in.HasPlan = true
		in.TasksDone = 2
		in.TasksTotal = 2
	}
	return in
}

// actorFor picks an actor the event's role rule accepts.
func actorFor(event models.TransitionEvent) Actor {
	switch event {
	case models.EventAssign, models.EventApprovePlan, models.EventRejectPlan, models.EventCancel:
		return Actor{ID: testAdmin, Role: models.AdminRole}
	case models.EventApproveAcceptance, models.EventRejectAcceptance:
		return Actor{ID: testCreator, Role: models.CustomerRole}
	default:
		return Actor{ID: testTechnician, Role: models.TechnicianRole}
	}
}

func TestDecideGrid(t *testing.T) {
	legal := map[models.RequestStatus]map[models.TransitionEvent]models.RequestStatus{
		models.StatusAwaitingAssignment: {
			models.EventAssign: models.StatusAssignmentPending,
		},
		models.StatusAssignmentPending: {
			models.EventTechnicianAccept: models.StatusConfirmed,
			models.EventTechnicianReject: models.StatusAwaitingAssignment,
		},
		models.StatusConfirmed: {
			models.EventSubmitSurvey: models.StatusSurveyed,
		},
		models.StatusSurveyed: {
			models.EventSubmitPlan: models.StatusPlanned,
		},
		models.StatusPlanned: {
			models.EventApprovePlan: models.StatusPlanApproved,
			models.EventRejectPlan:  models.StatusPlanRejected,
		},
		models.StatusPlanRejected: {
			models.EventResubmitPlan: models.StatusPlanned,
		},
		models.StatusPlanApproved: {
			models.EventStartExecution: models.StatusInMaintenance,
		},
		models.StatusInMaintenance: {
			models.EventCompleteExecution: models.StatusAwaitingAcceptance,
		},
		models.StatusAwaitingAcceptance: {
			models.EventApproveAcceptance: models.StatusCompleted,
			models.EventRejectAcceptance:  models.StatusInMaintenance,
		},
	}

	for _, status := range models.AllStatuses() {
		for _, event := range models.AllEvents() {
			if event == models.EventCancel {
				continue
			}
			decision, err := Decide(inputFor(status), event, actorFor(event))

			if status.IsTerminal() {
				require.True(t, models.IsKind(err, models.ErrKindTerminalState),
					"%v + %v must refuse with TERMINAL_STATE, got %v", status, event, err)
				continue
			}
			if next, ok := legal[status][event]; ok {
				require.NoError(t, err, "%v + %v must be legal", status, event)
				require.Equal(t, next, decision.Next, "%v + %v", status, event)
				continue
			}
			require.True(t, models.IsKind(err, models.ErrKindInvalidTransition),
				"%v + %v must refuse with INVALID_TRANSITION, got %v", status, event, err)
		}
	}
}

func TestDecideCancel(t *testing.T) {
	admin := Actor{ID: testAdmin, Role: models.AdminRole}
	creator := Actor{ID: testCreator, Role: models.CustomerRole}
	technician := Actor{ID: testTechnician, Role: models.TechnicianRole}

	for _, status := range models.AllStatuses() {
		in := inputFor(status)
		decision, err := Decide(in, models.EventCancel, admin)
		if status.IsTerminal() {
			require.True(t, models.IsKind(err, models.ErrKindTerminalState), "admin cancel from %v", status)
			continue
		}
		require.NoError(t, err, "admin cancel from %v", status)
		require.Equal(t, models.StatusCancelled, decision.Next)

		// cancel is an admin action: even the request creator is refused
		_, err = Decide(in, models.EventCancel, creator)
		require.True(t, models.IsKind(err, models.ErrKindForbidden), "creator cancel from %v", status)

		_, err = Decide(in, models.EventCancel, technician)
		require.True(t, models.IsKind(err, models.ErrKindForbidden), "technician cancel from %v", status)
	}
}

func TestDecideRoles(t *testing.T) {
	t.Run(`assign is admin only`, func(t *testing.T) {
		in := inputFor(models.StatusAwaitingAssignment)
		_, err := Decide(in, models.EventAssign, Actor{ID: testTechnician, Role: models.TechnicianRole})
		require.True(t, models.IsKind(err, models.ErrKindForbidden))
		_, err = Decide(in, models.EventAssign, Actor{ID: testCreator, Role: models.CustomerRole})
		require.True(t, models.IsKind(err, models.ErrKindForbidden))
	})

	t.Run(`only the assignee accepts`, func(t *testing.T) {
		in := inputFor(models.StatusAssignmentPending)
		_, err := Decide(in, models.EventTechnicianAccept, Actor{ID: "tech-2", Role: models.TechnicianRole})
		require.True(t, models.IsKind(err, models.ErrKindForbidden))

		decision, err := Decide(in, models.EventTechnicianAccept, Actor{ID: testTechnician, Role: models.TechnicianRole})
		require.NoError(t, err)
		require.Equal(t, models.StatusConfirmed, decision.Next)
	})

	t.Run(`only the creator or an admin accepts the work`, func(t *testing.T) {
		in := inputFor(models.StatusAwaitingAcceptance)
		_, err := Decide(in, models.EventApproveAcceptance, Actor{ID: "cust-2", Role: models.CustomerRole})
		require.True(t, models.IsKind(err, models.ErrKindForbidden))

		decision, err := Decide(in, models.EventApproveAcceptance, Actor{ID: testAdmin, Role: models.AdminRole})
		require.NoError(t, err)
		require.Equal(t, models.StatusCompleted, decision.Next)
	})

	t.Run(`technician may not approve the plan`, func(t *testing.T) {
		in := inputFor(models.StatusPlanned)
		_, err := Decide(in, models.EventApprovePlan, Actor{ID: testTechnician, Role: models.TechnicianRole})
		require.True(t, models.IsKind(err, models.ErrKindForbidden))
	})
}

func TestDecideGuards(t *testing.T) {
	technician := Actor{ID: testTechnician, Role: models.TechnicianRole}

	t.Run(`assign refuses when an assignment is open`, func(t *testing.T) {
		in := inputFor(models.StatusAwaitingAssignment)
		in.AssigneeID = "tech-2"
		_, err := Decide(in, models.EventAssign, Actor{ID: testAdmin, Role: models.AdminRole})
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))
	})

	t.Run(`plan needs a survey`, func(t *testing.T) {
		in := inputFor(models.StatusSurveyed)
		in.HasSurvey = false
		_, err := Decide(in, models.EventSubmitPlan, technician)
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))
	})

	t.Run(`completion needs every task done`, func(t *testing.T) {
		in := inputFor(models.StatusInMaintenance)
		in.TasksDone, in.TasksTotal = 2, 3
		_, err := Decide(in, models.EventCompleteExecution, technician)
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))

		in.TasksDone = 3
		decision, err := Decide(in, models.EventCompleteExecution, technician)
		require.NoError(t, err)
		require.Equal(t, models.StatusAwaitingAcceptance, decision.Next)
	})

	t.Run(`completion refuses an empty checklist`, func(t *testing.T) {
		in := inputFor(models.StatusInMaintenance)
		in.TasksDone, in.TasksTotal = 0, 0
		_, err := Decide(in, models.EventCompleteExecution, technician)
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))
	})
}

func TestDecideEffects(t *testing.T) {
	t.Run(`rejected acceptance records, logs and reopens`, func(t *testing.T) {
		in := inputFor(models.StatusAwaitingAcceptance)
		decision, err := Decide(in, models.EventRejectAcceptance, Actor{ID: testCreator, Role: models.CustomerRole})
		require.NoError(t, err)
		require.Equal(t, models.StatusInMaintenance, decision.Next)
		require.Equal(t, []Effect{
			{Kind: EffectRecordAcceptance, Accepted: false},
			{Kind: EffectLogRejection, Gate: models.GateAcceptance},
			{Kind: EffectReopenExecution},
		}, decision.Effects)
	})

	t.Run(`technician rejection logs at the assignment gate`, func(t *testing.T) {
		in := inputFor(models.StatusAssignmentPending)
		decision, err := Decide(in, models.EventTechnicianReject, Actor{ID: testTechnician, Role: models.TechnicianRole})
		require.NoError(t, err)
		require.Equal(t, models.StatusAwaitingAssignment, decision.Next)
		require.Equal(t, []Effect{
			{Kind: EffectRejectAssignment},
			{Kind: EffectLogRejection, Gate: models.GateAssignment},
		}, decision.Effects)
	})

	t.Run(`plan rejection keeps the plan`, func(t *testing.T) {
		in := inputFor(models.StatusPlanned)
		decision, err := Decide(in, models.EventRejectPlan, Actor{ID: testAdmin, Role: models.AdminRole})
		require.NoError(t, err)
		require.Equal(t, models.StatusPlanRejected, decision.Next)
		require.Equal(t, []Effect{{Kind: EffectLogRejection, Gate: models.GatePlanApproval}}, decision.Effects)
	})
}
