package lifecycle

import (
	"testing"
	"time"

	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	requestapimodels "maintenance-backend/models/api/request"
	dbmodels "maintenance-backend/models/db"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

type statusWrite struct {
	from, to models.RequestStatus
}

type stubRequests struct {
	rec           *dbmodels.MaintenanceRequest
	updateFromErr error
	writes        []statusWrite
}

func (s *stubRequests) Create(rec dbmodels.MaintenanceRequest) (string, error) { return rec.ID, nil }
func (s *stubRequests) GetByID(id string) (*dbmodels.MaintenanceRequest, error) {
	if s.rec != nil && s.rec.ID == id {
		return s.rec, nil
	}
	return nil, nil
}
func (s *stubRequests) List(requestapimodels.RequestListFilter) ([]dbmodels.MaintenanceRequest, error) {
	return nil, nil
}
func (s *stubRequests) ListCount(requestapimodels.RequestListFilter) (int64, error) { return 0, nil }
func (s *stubRequests) ListAwaitingAssignment() ([]dbmodels.MaintenanceRequest, error) {
	return nil, nil
}
func (s *stubRequests) Update(string, map[string]interface{}) error { return nil }
func (s *stubRequests) UpdateStatusFrom(id string, from, to models.RequestStatus) error {
	if s.updateFromErr != nil {
		return s.updateFromErr
	}
	s.writes = append(s.writes, statusWrite{from: from, to: to})
	return nil
}

type stubAssignments struct {
	created  []dbmodels.Assignment
	accepted []string
	rejected []string
}

func (s *stubAssignments) Create(rec dbmodels.Assignment) (string, error) {
	s.created = append(s.created, rec)
	return "asg-new", nil
}
func (s *stubAssignments) GetOpenByRequest(string) (*dbmodels.Assignment, error) { return nil, nil }
func (s *stubAssignments) MarkAccepted(id string, _ time.Time) error {
	s.accepted = append(s.accepted, id)
	return nil
}
func (s *stubAssignments) MarkRejected(id string, _ time.Time) error {
	s.rejected = append(s.rejected, id)
	return nil
}
func (s *stubAssignments) CountOpenByTechnician(string) (int64, error) { return 0, nil }
func (s *stubAssignments) History(string) ([]dbmodels.Assignment, error) {
	return s.created, nil
}

type stubRejections struct {
	entries []dbmodels.RejectionLogEntry
}

func (s *stubRejections) Create(rec dbmodels.RejectionLogEntry) (string, error) {
	s.entries = append(s.entries, rec)
	return "rej-new", nil
}
func (s *stubRejections) Latest(string, models.RejectionGate) (*dbmodels.RejectionLogEntry, error) {
	return nil, nil
}
func (s *stubRejections) History(string) ([]dbmodels.RejectionLogEntry, error) {
	return s.entries, nil
}

type stubSurveys struct {
	created []dbmodels.Survey
}

func (s *stubSurveys) Create(rec dbmodels.Survey) (string, error) {
	s.created = append(s.created, rec)
	return "srv-new", nil
}
func (s *stubSurveys) GetByRequest(string) (*dbmodels.Survey, error) { return nil, nil }

type stubPlans struct {
	created []dbmodels.Plan
	updates []map[string]interface{}
}

func (s *stubPlans) GetByRequest(string) (*dbmodels.Plan, error) { return nil, nil }
func (s *stubPlans) Create(rec dbmodels.Plan) (string, error) {
	s.created = append(s.created, rec)
	return "plan-new", nil
}
func (s *stubPlans) Update(_ string, updMap map[string]interface{}) error {
	s.updates = append(s.updates, updMap)
	return nil
}

type stubMaterials struct {
	createdLines []dbmodels.MaterialLine
	deletedPlans []string
}

func (s *stubMaterials) CreateLines(lines []dbmodels.MaterialLine) error {
	s.createdLines = append(s.createdLines, lines...)
	return nil
}
func (s *stubMaterials) ListByPlan(string) ([]dbmodels.MaterialLine, error)      { return nil, nil }
func (s *stubMaterials) ListByExecution(string) ([]dbmodels.MaterialLine, error) { return nil, nil }
func (s *stubMaterials) DeleteByPlan(planID string) error {
	s.deletedPlans = append(s.deletedPlans, planID)
	return nil
}

type stubExecutions struct {
	created  []dbmodels.Execution
	endAtSet []*time.Time
}

func (s *stubExecutions) Create(rec dbmodels.Execution) (string, error) {
	s.created = append(s.created, rec)
	return "exec-new", nil
}
func (s *stubExecutions) GetByRequest(string) (*dbmodels.Execution, error) { return nil, nil }
func (s *stubExecutions) SetEndAt(_ string, at *time.Time) error {
	s.endAtSet = append(s.endAtSet, at)
	return nil
}
func (s *stubExecutions) CreateTask(dbmodels.ExecutionTask) (string, error)    { return "", nil }
func (s *stubExecutions) GetTask(string) (*dbmodels.ExecutionTask, error)      { return nil, nil }
func (s *stubExecutions) UpdateTask(string, map[string]interface{}) error      { return nil }
func (s *stubExecutions) ListTasks(string) ([]dbmodels.ExecutionTask, error)   { return nil, nil }
func (s *stubExecutions) CreateSupportRequest(dbmodels.SupportRequest) (string, error) {
	return "", nil
}
func (s *stubExecutions) GetSupportRequest(string) (*dbmodels.SupportRequest, error) {
	return nil, nil
}
func (s *stubExecutions) UpdateSupportRequest(string, map[string]interface{}) error { return nil }
func (s *stubExecutions) ListSupportRequests(string) ([]dbmodels.SupportRequest, error) {
	return nil, nil
}

type stubAcceptances struct {
	created []dbmodels.Acceptance
}

func (s *stubAcceptances) Create(rec dbmodels.Acceptance) (string, error) {
	s.created = append(s.created, rec)
	return "acc-new", nil
}
func (s *stubAcceptances) ListByRequest(string) ([]dbmodels.Acceptance, error) {
	return s.created, nil
}

type stubTechnicians struct {
	byID map[string]dbmodels.Technician
}

func (s *stubTechnicians) Create(rec dbmodels.Technician) (string, error) { return rec.ID, nil }
func (s *stubTechnicians) GetByID(id string) (*dbmodels.Technician, error) {
	if rec, ok := s.byID[id]; ok {
		return &rec, nil
	}
	return nil, nil
}
func (s *stubTechnicians) Update(string, map[string]interface{}) error { return nil }
func (s *stubTechnicians) List(apimodels.Pagination, string) ([]dbmodels.Technician, error) {
	return nil, nil
}
func (s *stubTechnicians) ListCount(string) (int64, error)            { return 0, nil }
func (s *stubTechnicians) ListActive() ([]dbmodels.Technician, error) { return nil, nil }
func (s *stubTechnicians) CreateShift(dbmodels.ShiftWindow) (string, error) {
	return "", nil
}
func (s *stubTechnicians) ListShifts(string, time.Time, time.Time) ([]dbmodels.ShiftWindow, error) {
	return nil, nil
}

type stubRejectReasons struct {
	byID map[string]dbmodels.RejectReason
}

func (s *stubRejectReasons) Create(rec dbmodels.RejectReason) (string, error) { return rec.ID, nil }
func (s *stubRejectReasons) GetByID(id string) (*dbmodels.RejectReason, error) {
	if rec, ok := s.byID[id]; ok {
		return &rec, nil
	}
	return nil, nil
}
func (s *stubRejectReasons) List(models.RejectionGate) ([]dbmodels.RejectReason, error) {
	return nil, nil
}
func (s *stubRejectReasons) Delete(string) error { return nil }

type txFixture struct {
	handler       *txHandler
	requests      *stubRequests
	assignments   *stubAssignments
	rejections    *stubRejections
	surveys       *stubSurveys
	plans         *stubPlans
	materials     *stubMaterials
	executions    *stubExecutions
	acceptances   *stubAcceptances
	technicians   *stubTechnicians
	rejectReasons *stubRejectReasons
}

func newTxFixture(rec *dbmodels.MaintenanceRequest) *txFixture {
	f := &txFixture{
		requests:    &stubRequests{rec: rec},
		assignments: &stubAssignments{},
		rejections:  &stubRejections{},
		surveys:     &stubSurveys{},
		plans:       &stubPlans{},
		materials:   &stubMaterials{},
		executions:  &stubExecutions{},
		acceptances: &stubAcceptances{},
		technicians: &stubTechnicians{byID: map[string]dbmodels.Technician{}},
		rejectReasons: &stubRejectReasons{byID: map[string]dbmodels.RejectReason{
			"reason-plan": {BaseModel: dbmodels.BaseModel{ID: "reason-plan"}, Gate: models.GatePlanApproval, Name: "Giải pháp chưa phù hợp"},
			"reason-acc":  {BaseModel: dbmodels.BaseModel{ID: "reason-acc"}, Gate: models.GateAcceptance, Name: "Thiết bị chưa hoạt động ổn định"},
			"reason-asg":  {BaseModel: dbmodels.BaseModel{ID: "reason-asg"}, Gate: models.GateAssignment, Name: "Trùng lịch"},
		}},
	}
	f.handler = &txHandler{
		requests:      f.requests,
		assignments:   f.assignments,
		rejections:    f.rejections,
		surveys:       f.surveys,
		plans:         f.plans,
		materials:     f.materials,
		executions:    f.executions,
		acceptances:   f.acceptances,
		technicians:   f.technicians,
		rejectReasons: f.rejectReasons,
		now:           func() time.Time { return testNow },
	}
	return f
}

func acceptedAssignment() dbmodels.Assignment {
	at := testNow.Add(-24 * time.Hour)
	return dbmodels.Assignment{
		BaseModel:    dbmodels.BaseModel{ID: "asg-1"},
		RequestID:    "req-1",
		TechnicianID: testTechnician,
		AcceptedAt:   &at,
		IsMain:       true,
	}
}

func requestInState(status models.RequestStatus) *dbmodels.MaintenanceRequest {
	rec := &dbmodels.MaintenanceRequest{
		BaseModel:   dbmodels.BaseModel{ID: "req-1"},
		RequestCode: "YC-2025-000042",
		CreatorID:   testCreator,
		Status:      status,
	}
	switch status {
	case models.StatusAwaitingAssignment:
	case models.StatusAssignmentPending:
		open := acceptedAssignment()
		open.AcceptedAt = nil
		rec.Assignments = []dbmodels.Assignment{open}
	default:
		rec.Assignments = []dbmodels.Assignment{acceptedAssignment()}
		rec.Survey = &dbmodels.Survey{BaseModel: dbmodels.BaseModel{ID: "srv-1"}, RequestID: rec.ID}
		rec.Plan = &dbmodels.Plan{BaseModel: dbmodels.BaseModel{ID: "plan-1"}, RequestID: rec.ID}
	}
	if status == models.StatusInMaintenance || status == models.StatusAwaitingAcceptance {
		done := testNow.Add(-time.Hour)
		rec.Execution = &dbmodels.Execution{
			BaseModel:        dbmodels.BaseModel{ID: "exec-1"},
			RequestID:        rec.ID,
			MainTechnicianID: testTechnician,
			Tasks: []dbmodels.ExecutionTask{
				{BaseModel: dbmodels.BaseModel{ID: "task-1"}, Done: true, DoneAt: &done},
				{BaseModel: dbmodels.BaseModel{ID: "task-2"}, Done: true, DoneAt: &done},
			},
		}
	}
	return rec
}

func TestTransitionAssign(t *testing.T) {
	admin := Actor{ID: testAdmin, Role: models.AdminRole}
	payload := requestapimodels.TransitionPayload{
		Assign: &requestapimodels.AssignData{TechnicianID: testTechnician, IsMain: true},
	}

	t.Run(`assigns an active technician`, func(t *testing.T) {
		f := newTxFixture(requestInState(models.StatusAwaitingAssignment))
		f.technicians.byID[testTechnician] = dbmodels.Technician{
			BaseModel: dbmodels.BaseModel{ID: testTechnician},
			FullName:  "Nguyễn Văn An",
			Active:    true,
		}

		result, notices, err := f.handler.transition("req-1", models.EventAssign, admin, payload)
		require.NoError(t, err)
		require.Equal(t, models.StatusAssignmentPending, result.NewStatus)

		require.Len(t, f.assignments.created, 1)
		require.Equal(t, testTechnician, f.assignments.created[0].TechnicianID)
		require.Equal(t, testAdmin, f.assignments.created[0].AssignedBy)
		require.Equal(t, testNow, f.assignments.created[0].AssignedAt)

		require.Equal(t, []statusWrite{{from: models.StatusAwaitingAssignment, to: models.StatusAssignmentPending}}, f.requests.writes)

		// creator and technician are both notified
		require.Len(t, notices, 2)
		require.Equal(t, dbmodels.PushStatusChanged, notices[0].Code)
		require.Equal(t, testCreator, notices[0].ToUserID)
		require.Equal(t, dbmodels.PushRequestAssigned, notices[1].Code)
		require.Equal(t, testTechnician, notices[1].ToUserID)
	})

	t.Run(`unknown technician`, func(t *testing.T) {
		f := newTxFixture(requestInState(models.StatusAwaitingAssignment))
		_, _, err := f.handler.transition("req-1", models.EventAssign, admin, payload)
		require.True(t, models.IsKind(err, models.ErrKindReferentialIntegrity))
		require.Empty(t, f.requests.writes)
	})

	t.Run(`inactive technician`, func(t *testing.T) {
		f := newTxFixture(requestInState(models.StatusAwaitingAssignment))
		f.technicians.byID[testTechnician] = dbmodels.Technician{
			BaseModel: dbmodels.BaseModel{ID: testTechnician},
			Active:    false,
		}
		_, _, err := f.handler.transition("req-1", models.EventAssign, admin, payload)
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))
	})

	t.Run(`missing payload`, func(t *testing.T) {
		f := newTxFixture(requestInState(models.StatusAwaitingAssignment))
		_, _, err := f.handler.transition("req-1", models.EventAssign, admin, requestapimodels.TransitionPayload{})
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))
	})

	t.Run(`unknown request`, func(t *testing.T) {
		f := newTxFixture(requestInState(models.StatusAwaitingAssignment))
		_, _, err := f.handler.transition("req-404", models.EventAssign, admin, payload)
		require.True(t, models.IsKind(err, models.ErrKindReferentialIntegrity))
	})
}

func TestTransitionConflict(t *testing.T) {
	f := newTxFixture(requestInState(models.StatusPlanned))
	f.requests.updateFromErr = models.NewConflict("request req-1 was changed concurrently")

	_, _, err := f.handler.transition("req-1", models.EventApprovePlan,
		Actor{ID: testAdmin, Role: models.AdminRole}, requestapimodels.TransitionPayload{})
	require.True(t, models.IsKind(err, models.ErrKindConflict))
}

func TestTransitionRejectPlan(t *testing.T) {
	admin := Actor{ID: testAdmin, Role: models.AdminRole}

	t.Run(`keeps the plan and writes one ledger entry`, func(t *testing.T) {
		f := newTxFixture(requestInState(models.StatusPlanned))
		payload := requestapimodels.TransitionPayload{
			Rejection: &requestapimodels.RejectionData{ReasonID: "reason-plan", Note: "thiếu vật tư"},
		}

		result, notices, err := f.handler.transition("req-1", models.EventRejectPlan, admin, payload)
		require.NoError(t, err)
		require.Equal(t, models.StatusPlanRejected, result.NewStatus)

		require.Len(t, f.rejections.entries, 1)
		require.Equal(t, models.GatePlanApproval, f.rejections.entries[0].Gate)
		require.Equal(t, "reason-plan", f.rejections.entries[0].RejectReasonID)
		require.Equal(t, testAdmin, f.rejections.entries[0].RejectedBy)

		// the plan record is untouched, resubmission will rewrite it
		require.Empty(t, f.plans.updates)
		require.Empty(t, f.materials.deletedPlans)

		require.Len(t, notices, 2)
		require.Equal(t, dbmodels.PushPlanDecision, notices[1].Code)
		require.Equal(t, testTechnician, notices[1].ToUserID)
	})

	t.Run(`refuses a reason from another gate`, func(t *testing.T) {
		f := newTxFixture(requestInState(models.StatusPlanned))
		payload := requestapimodels.TransitionPayload{
			Rejection: &requestapimodels.RejectionData{ReasonID: "reason-acc"},
		}
		_, _, err := f.handler.transition("req-1", models.EventRejectPlan, admin, payload)
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))
		require.Empty(t, f.rejections.entries)
	})
}

func TestTransitionResubmitPlan(t *testing.T) {
	f := newTxFixture(requestInState(models.StatusPlanRejected))
	warehouse := "wh-1"
	payload := requestapimodels.TransitionPayload{
		Plan: &requestapimodels.PlanData{
			SolutionRefs: []string{"sol-2"},
			UseMaterial:  true,
			Materials: []requestapimodels.MaterialLineData{
				{PartID: "part-7", Quantity: 2, WarehouseID: &warehouse},
			},
		},
	}

	result, _, err := f.handler.transition("req-1", models.EventResubmitPlan,
		Actor{ID: testTechnician, Role: models.TechnicianRole}, payload)
	require.NoError(t, err)
	require.Equal(t, models.StatusPlanned, result.NewStatus)

	// the existing plan row is rewritten in place
	require.Len(t, f.plans.updates, 1)
	require.Empty(t, f.plans.created)
	require.Equal(t, []string{"plan-1"}, f.materials.deletedPlans)
	require.Len(t, f.materials.createdLines, 1)
	require.Equal(t, "part-7", f.materials.createdLines[0].PartID)
	require.Equal(t, "plan-1", *f.materials.createdLines[0].PlanID)
}

func TestTransitionRejectAcceptance(t *testing.T) {
	creator := Actor{ID: testCreator, Role: models.CustomerRole}
	payload := requestapimodels.TransitionPayload{
		Acceptance: &requestapimodels.AcceptanceData{Rating: 2, Comment: "máy vẫn kêu to"},
		Rejection:  &requestapimodels.RejectionData{ReasonID: "reason-acc"},
	}

	f := newTxFixture(requestInState(models.StatusAwaitingAcceptance))
	result, notices, err := f.handler.transition("req-1", models.EventRejectAcceptance, creator, payload)
	require.NoError(t, err)

	// back to work, not to a terminal rejection state
	require.Equal(t, models.StatusInMaintenance, result.NewStatus)

	require.Len(t, f.acceptances.created, 1)
	require.False(t, f.acceptances.created[0].Accepted)
	require.Equal(t, models.CustomerRole, f.acceptances.created[0].ApproverType)
	require.Equal(t, 2, f.acceptances.created[0].Rating)

	require.Len(t, f.rejections.entries, 1)
	require.Equal(t, models.GateAcceptance, f.rejections.entries[0].Gate)

	// the execution is reopened: end_at cleared
	require.Equal(t, []*time.Time{nil}, f.executions.endAtSet)

	// the creator acted, so only the technician is notified
	require.Len(t, notices, 1)
	require.Equal(t, dbmodels.PushAcceptanceResult, notices[0].Code)
	require.Equal(t, testTechnician, notices[0].ToUserID)
}

func TestTransitionApproveAcceptance(t *testing.T) {
	f := newTxFixture(requestInState(models.StatusAwaitingAcceptance))
	payload := requestapimodels.TransitionPayload{
		Acceptance: &requestapimodels.AcceptanceData{Rating: 5, IsOnTime: true, IsProfessional: true, IsDeviceWorking: true},
	}

	result, _, err := f.handler.transition("req-1", models.EventApproveAcceptance,
		Actor{ID: testAdmin, Role: models.AdminRole}, payload)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, result.NewStatus)

	require.Len(t, f.acceptances.created, 1)
	require.True(t, f.acceptances.created[0].Accepted)
	require.Equal(t, models.AdminRole, f.acceptances.created[0].ApproverType)
	require.Empty(t, f.executions.endAtSet)
}

func TestTransitionCompleteExecution(t *testing.T) {
	t.Run(`closes the execution when every task is done`, func(t *testing.T) {
		f := newTxFixture(requestInState(models.StatusInMaintenance))
		result, _, err := f.handler.transition("req-1", models.EventCompleteExecution,
			Actor{ID: testTechnician, Role: models.TechnicianRole}, requestapimodels.TransitionPayload{})
		require.NoError(t, err)
		require.Equal(t, models.StatusAwaitingAcceptance, result.NewStatus)
		require.Len(t, f.executions.endAtSet, 1)
		require.Equal(t, testNow, *f.executions.endAtSet[0])
	})

	t.Run(`refuses with open tasks`, func(t *testing.T) {
		rec := requestInState(models.StatusInMaintenance)
		rec.Execution.Tasks[1].Done = false
		f := newTxFixture(rec)
		_, _, err := f.handler.transition("req-1", models.EventCompleteExecution,
			Actor{ID: testTechnician, Role: models.TechnicianRole}, requestapimodels.TransitionPayload{})
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))
		require.Empty(t, f.executions.endAtSet)
	})
}

func TestTransitionTechnicianReject(t *testing.T) {
	f := newTxFixture(requestInState(models.StatusAssignmentPending))
	payload := requestapimodels.TransitionPayload{
		Rejection: &requestapimodels.RejectionData{ReasonID: "reason-asg", Note: "đang bận ca khác"},
	}

	result, _, err := f.handler.transition("req-1", models.EventTechnicianReject,
		Actor{ID: testTechnician, Role: models.TechnicianRole}, payload)
	require.NoError(t, err)
	require.Equal(t, models.StatusAwaitingAssignment, result.NewStatus)

	require.Equal(t, []string{"asg-1"}, f.assignments.rejected)
	require.Len(t, f.rejections.entries, 1)
	require.Equal(t, models.GateAssignment, f.rejections.entries[0].Gate)
}
