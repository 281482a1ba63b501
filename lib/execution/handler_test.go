package executionhandler

import (
	"testing"
	"time"

	"maintenance-backend/models"
	executionapimodels "maintenance-backend/models/api/execution"
	requestapimodels "maintenance-backend/models/api/request"
	dbmodels "maintenance-backend/models/db"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 11, 3, 14, 0, 0, 0, time.UTC)

const (
	mainTech  = "tech-1"
	helper    = "tech-2"
	outsider  = "tech-3"
	adminUser = "adm-1"
)

type stubRequestStore struct {
	rec *dbmodels.MaintenanceRequest
}

func (s *stubRequestStore) Create(rec dbmodels.MaintenanceRequest) (string, error) { return rec.ID, nil }
func (s *stubRequestStore) GetByID(id string) (*dbmodels.MaintenanceRequest, error) {
	if s.rec != nil && s.rec.ID == id {
		return s.rec, nil
	}
	return nil, nil
}
func (s *stubRequestStore) List(requestapimodels.RequestListFilter) ([]dbmodels.MaintenanceRequest, error) {
	return nil, nil
}
func (s *stubRequestStore) ListCount(requestapimodels.RequestListFilter) (int64, error) {
	return 0, nil
}
func (s *stubRequestStore) ListAwaitingAssignment() ([]dbmodels.MaintenanceRequest, error) {
	return nil, nil
}
func (s *stubRequestStore) Update(string, map[string]interface{}) error { return nil }
func (s *stubRequestStore) UpdateStatusFrom(string, models.RequestStatus, models.RequestStatus) error {
	return nil
}

type stubExecutionStore struct {
	tasks       map[string]*dbmodels.ExecutionTask
	supports    map[string]*dbmodels.SupportRequest
	taskUpdates int
}

func newStubExecutionStore() *stubExecutionStore {
	return &stubExecutionStore{
		tasks:    map[string]*dbmodels.ExecutionTask{},
		supports: map[string]*dbmodels.SupportRequest{},
	}
}

func (s *stubExecutionStore) Create(rec dbmodels.Execution) (string, error) { return rec.ID, nil }
func (s *stubExecutionStore) GetByRequest(string) (*dbmodels.Execution, error) {
	return nil, nil
}
func (s *stubExecutionStore) SetEndAt(string, *time.Time) error { return nil }
func (s *stubExecutionStore) CreateTask(rec dbmodels.ExecutionTask) (string, error) {
	rec.ID = "task-new"
	s.tasks[rec.ID] = &rec
	return rec.ID, nil
}
func (s *stubExecutionStore) GetTask(id string) (*dbmodels.ExecutionTask, error) {
	if task, ok := s.tasks[id]; ok {
		copied := *task
		return &copied, nil
	}
	return nil, nil
}
func (s *stubExecutionStore) UpdateTask(id string, updMap map[string]interface{}) error {
	s.taskUpdates++
	task := s.tasks[id]
	if done, ok := updMap["done"].(bool); ok {
		task.Done = done
	}
	if doneBy, ok := updMap["done_by"].(string); ok {
		task.DoneBy = &doneBy
	}
	if doneAt, ok := updMap["done_at"].(time.Time); ok {
		task.DoneAt = &doneAt
	}
	if note, ok := updMap["note"].(string); ok {
		task.Note = note
	}
	return nil
}
func (s *stubExecutionStore) ListTasks(string) ([]dbmodels.ExecutionTask, error) {
	list := make([]dbmodels.ExecutionTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		list = append(list, *task)
	}
	return list, nil
}
func (s *stubExecutionStore) CreateSupportRequest(rec dbmodels.SupportRequest) (string, error) {
	rec.ID = "sup-new"
	s.supports[rec.ID] = &rec
	return rec.ID, nil
}
func (s *stubExecutionStore) GetSupportRequest(id string) (*dbmodels.SupportRequest, error) {
	if sup, ok := s.supports[id]; ok {
		copied := *sup
		return &copied, nil
	}
	return nil, nil
}
func (s *stubExecutionStore) UpdateSupportRequest(id string, updMap map[string]interface{}) error {
	sup := s.supports[id]
	if status, ok := updMap["status"].(models.SupportRequestStatus); ok {
		sup.Status = status
	}
	return nil
}
func (s *stubExecutionStore) ListSupportRequests(string) ([]dbmodels.SupportRequest, error) {
	return nil, nil
}

func workingRequest() *dbmodels.MaintenanceRequest {
	return &dbmodels.MaintenanceRequest{
		BaseModel:   dbmodels.BaseModel{ID: "req-1"},
		RequestCode: "YC-2025-000042",
		Status:      models.StatusInMaintenance,
		Execution: &dbmodels.Execution{
			BaseModel:        dbmodels.BaseModel{ID: "exec-1"},
			RequestID:        "req-1",
			MainTechnicianID: mainTech,
			SupportRequests: []dbmodels.SupportRequest{
				{TechnicianID: helper, Status: models.SupportApproved},
			},
		},
	}
}

func newHandler(rec *dbmodels.MaintenanceRequest, store *stubExecutionStore) impl {
	return impl{
		store:    store,
		requests: &stubRequestStore{rec: rec},
		now:      func() time.Time { return testNow },
	}
}

func TestMarkTaskDone(t *testing.T) {
	t.Run(`completes a task with evidence`, func(t *testing.T) {
		store := newStubExecutionStore()
		store.tasks["task-1"] = &dbmodels.ExecutionTask{
			BaseModel:   dbmodels.BaseModel{ID: "task-1"},
			ExecutionID: "exec-1",
			Content:     "Thay dây curoa",
		}
		h := newHandler(workingRequest(), store)

		view, err := h.MarkTaskDone("req-1", "task-1", mainTech, models.TechnicianRole,
			executionapimodels.TaskEvidence{Note: "đã thay xong", Images: []string{"file-1"}})
		require.NoError(t, err)
		require.True(t, view.Done)
		require.Equal(t, mainTech, *view.DoneBy)
		require.Equal(t, testNow, *view.DoneAt)
	})

	t.Run(`repeating the call is a no-op`, func(t *testing.T) {
		store := newStubExecutionStore()
		store.tasks["task-1"] = &dbmodels.ExecutionTask{
			BaseModel:   dbmodels.BaseModel{ID: "task-1"},
			ExecutionID: "exec-1",
		}
		h := newHandler(workingRequest(), store)

		first, err := h.MarkTaskDone("req-1", "task-1", mainTech, models.TechnicianRole,
			executionapimodels.TaskEvidence{Note: "lần một"})
		require.NoError(t, err)

		second, err := h.MarkTaskDone("req-1", "task-1", mainTech, models.TechnicianRole,
			executionapimodels.TaskEvidence{Note: "lần hai"})
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.Equal(t, 1, store.taskUpdates)
	})

	t.Run(`approved helper may complete tasks`, func(t *testing.T) {
		store := newStubExecutionStore()
		store.tasks["task-1"] = &dbmodels.ExecutionTask{
			BaseModel:   dbmodels.BaseModel{ID: "task-1"},
			ExecutionID: "exec-1",
		}
		h := newHandler(workingRequest(), store)

		_, err := h.MarkTaskDone("req-1", "task-1", helper, models.TechnicianRole, executionapimodels.TaskEvidence{})
		require.NoError(t, err)
	})

	t.Run(`outsider technician is refused`, func(t *testing.T) {
		store := newStubExecutionStore()
		store.tasks["task-1"] = &dbmodels.ExecutionTask{
			BaseModel:   dbmodels.BaseModel{ID: "task-1"},
			ExecutionID: "exec-1",
		}
		h := newHandler(workingRequest(), store)

		_, err := h.MarkTaskDone("req-1", "task-1", outsider, models.TechnicianRole, executionapimodels.TaskEvidence{})
		require.True(t, models.IsKind(err, models.ErrKindForbidden))
		require.Zero(t, store.taskUpdates)
	})

	t.Run(`task of another execution is not found`, func(t *testing.T) {
		store := newStubExecutionStore()
		store.tasks["task-1"] = &dbmodels.ExecutionTask{
			BaseModel:   dbmodels.BaseModel{ID: "task-1"},
			ExecutionID: "exec-other",
		}
		h := newHandler(workingRequest(), store)

		_, err := h.MarkTaskDone("req-1", "task-1", mainTech, models.TechnicianRole, executionapimodels.TaskEvidence{})
		require.True(t, models.IsKind(err, models.ErrKindReferentialIntegrity))
	})
}

func TestAddTask(t *testing.T) {
	t.Run(`only while in maintenance`, func(t *testing.T) {
		rec := workingRequest()
		rec.Status = models.StatusPlanApproved
		h := newHandler(rec, newStubExecutionStore())

		_, err := h.AddTask("req-1", mainTech, models.TechnicianRole,
			executionapimodels.TaskCreateData{Content: "Kiểm tra động cơ"})
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))
	})

	t.Run(`admin may add tasks`, func(t *testing.T) {
		store := newStubExecutionStore()
		h := newHandler(workingRequest(), store)

		view, err := h.AddTask("req-1", adminUser, models.AdminRole,
			executionapimodels.TaskCreateData{Content: "Kiểm tra động cơ"})
		require.NoError(t, err)
		require.Equal(t, "Kiểm tra động cơ", view.Content)
		require.False(t, view.Done)
	})

	t.Run(`empty content is refused`, func(t *testing.T) {
		h := newHandler(workingRequest(), newStubExecutionStore())
		_, err := h.AddTask("req-1", mainTech, models.TechnicianRole, executionapimodels.TaskCreateData{})
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))
	})
}

func TestProgress(t *testing.T) {
	rec := workingRequest()
	done := testNow
	rec.Execution.Tasks = []dbmodels.ExecutionTask{
		{Done: true, DoneAt: &done},
		{Done: true, DoneAt: &done},
		{Done: false},
	}
	h := newHandler(rec, newStubExecutionStore())

	view, err := h.Progress("req-1")
	require.NoError(t, err)
	require.Equal(t, 3, view.TotalTasks)
	require.Equal(t, 2, view.CompletedTasks)
	require.InDelta(t, 2.0/3.0, view.Ratio, 0.0001)
}

func TestSupportRequests(t *testing.T) {
	t.Run(`only the main technician may ask for support`, func(t *testing.T) {
		h := newHandler(workingRequest(), newStubExecutionStore())
		_, err := h.CreateSupportRequest("req-1", helper,
			executionapimodels.SupportRequestData{TechnicianID: outsider, Reason: "cần thêm người"})
		require.True(t, models.IsKind(err, models.ErrKindForbidden))
	})

	t.Run(`resolution flips pending to approved once`, func(t *testing.T) {
		store := newStubExecutionStore()
		h := newHandler(workingRequest(), store)

		created, err := h.CreateSupportRequest("req-1", mainTech,
			executionapimodels.SupportRequestData{TechnicianID: helper, Reason: "cần thêm người"})
		require.NoError(t, err)
		require.Equal(t, models.SupportPending, created.Status)

		resolved, err := h.ResolveSupportRequest(created.ID, adminUser, true)
		require.NoError(t, err)
		require.Equal(t, models.SupportApproved, resolved.Status)

		_, err = h.ResolveSupportRequest(created.ID, adminUser, false)
		require.True(t, models.IsKind(err, models.ErrKindPreconditionFailed))
	})
}
