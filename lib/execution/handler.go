package executionhandler

import (
	"time"

	"maintenance-backend/db"
	executionstore "maintenance-backend/lib/execution/store"
	"maintenance-backend/lib/notification"
	requeststore "maintenance-backend/lib/request/store"
	"maintenance-backend/models"
	executionapimodels "maintenance-backend/models/api/execution"
	dbmodels "maintenance-backend/models/db"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	AddTask(requestID string, actorID string, role models.UserRole, data executionapimodels.TaskCreateData) (executionapimodels.TaskView, error)
	// MarkTaskDone is idempotent: repeating it on a finished task returns
	// the task unchanged.
	MarkTaskDone(requestID, taskID string, actorID string, role models.UserRole, evidence executionapimodels.TaskEvidence) (executionapimodels.TaskView, error)
	Tasks(requestID string) ([]executionapimodels.TaskView, error)
	Progress(requestID string) (executionapimodels.ProgressView, error)
	CreateSupportRequest(requestID string, actorID string, data executionapimodels.SupportRequestData) (executionapimodels.SupportRequestView, error)
	ResolveSupportRequest(supportID string, adminID string, approve bool) (executionapimodels.SupportRequestView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithTx(nil)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	if tx == nil {
		tx = db.DB
	}
	return impl{
		store:    executionstore.NewInstance(tx),
		requests: requeststore.NewInstance(tx),
		now:      time.Now,
	}
}

type impl struct {
	store    executionstore.Provider
	requests requeststore.Provider
	now      func() time.Time
}

// activeExecution resolves the execution of a request that is currently in
// the work phase.
func (i impl) activeExecution(requestID string) (*dbmodels.Execution, error) {
	rec, err := i.requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewReferentialIntegrity("request %v not found", requestID)
	}
	if rec.Status != models.StatusInMaintenance {
		return nil, models.NewPreconditionFailed("request %v is not in the work phase", rec.RequestCode)
	}
	if rec.Execution == nil {
		return nil, models.NewPreconditionFailed("request %v has no execution record", rec.RequestCode)
	}
	return rec.Execution, nil
}

// canWork reports whether the actor may touch the checklist: admins, the
// main technician, and helpers with an approved support request.
func canWork(exec *dbmodels.Execution, actorID string, role models.UserRole) bool {
	if role.IsAdmin() {
		return true
	}
	if role != models.TechnicianRole {
		return false
	}
	if exec.MainTechnicianID == actorID {
		return true
	}
	for _, sr := range exec.SupportRequests {
		if sr.TechnicianID == actorID && sr.Status == models.SupportApproved {
			return true
		}
	}
	return false
}

func (i impl) AddTask(requestID string, actorID string, role models.UserRole, data executionapimodels.TaskCreateData) (view executionapimodels.TaskView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	exec, err := i.activeExecution(requestID)
	if err != nil {
		return view, err
	}
	if !canWork(exec, actorID, role) {
		return view, models.NewForbidden("only the working technician may add tasks")
	}
	id, err := i.store.CreateTask(dbmodels.ExecutionTask{
		ExecutionID: exec.ID,
		Content:     data.Content,
	})
	if err != nil {
		return view, err
	}
	task, err := i.store.GetTask(id)
	if err != nil {
		return view, err
	}
	return executionapimodels.TaskConvert(*task), nil
}

func (i impl) MarkTaskDone(requestID, taskID string, actorID string, role models.UserRole, evidence executionapimodels.TaskEvidence) (view executionapimodels.TaskView, err error) {
	if err = evidence.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	exec, err := i.activeExecution(requestID)
	if err != nil {
		return view, err
	}
	if !canWork(exec, actorID, role) {
		return view, models.NewForbidden("only the working technician may complete tasks")
	}
	task, err := i.store.GetTask(taskID)
	if err != nil {
		return view, err
	}
	if task == nil || task.ExecutionID != exec.ID {
		return view, models.NewReferentialIntegrity("task %v not found on request %v", taskID, requestID)
	}
	if task.Done {
		return executionapimodels.TaskConvert(*task), nil
	}
	now := i.now()
	updMap := map[string]interface{}{
		"done":    true,
		"done_by": actorID,
		"done_at": now,
		"note":    evidence.Note,
		"images":  pq.StringArray(evidence.Images),
	}
	if evidence.VideoRef != nil {
		updMap["video_ref"] = *evidence.VideoRef
	}
	if err = i.store.UpdateTask(task.ID, updMap); err != nil {
		return view, err
	}
	log.
		WithField("request_id", requestID).
		WithField("task_id", taskID).
		Info("execution task completed")
	saved, err := i.store.GetTask(task.ID)
	if err != nil {
		return view, err
	}
	return executionapimodels.TaskConvert(*saved), nil
}

func (i impl) Tasks(requestID string) ([]executionapimodels.TaskView, error) {
	rec, err := i.requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewReferentialIntegrity("request %v not found", requestID)
	}
	if rec.Execution == nil {
		return []executionapimodels.TaskView{}, nil
	}
	tasks, err := i.store.ListTasks(rec.Execution.ID)
	if err != nil {
		return nil, err
	}
	views := make([]executionapimodels.TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, executionapimodels.TaskConvert(task))
	}
	return views, nil
}

func (i impl) Progress(requestID string) (view executionapimodels.ProgressView, err error) {
	rec, err := i.requests.GetByID(requestID)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.NewReferentialIntegrity("request %v not found", requestID)
	}
	if rec.Execution == nil {
		return view, nil
	}
	done, total := rec.Execution.Progress()
	view = executionapimodels.ProgressView{
		TotalTasks:     total,
		CompletedTasks: done,
	}
	if total > 0 {
		view.Ratio = float64(done) / float64(total)
	}
	return view, nil
}

func (i impl) CreateSupportRequest(requestID string, actorID string, data executionapimodels.SupportRequestData) (view executionapimodels.SupportRequestView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	exec, err := i.activeExecution(requestID)
	if err != nil {
		return view, err
	}
	if exec.MainTechnicianID != actorID {
		return view, models.NewForbidden("only the main technician may request support")
	}
	id, err := i.store.CreateSupportRequest(dbmodels.SupportRequest{
		ExecutionID:  exec.ID,
		RequestedBy:  actorID,
		TechnicianID: data.TechnicianID,
		Reason:       data.Reason,
		Status:       models.SupportPending,
	})
	if err != nil {
		return view, err
	}
	if notification.Instance != nil {
		notification.Instance.Notify(dbmodels.PushData{
			ToUserID:  data.TechnicianID,
			RequestID: requestID,
			Code:      dbmodels.PushSupportRequested,
			Msg:       data.Reason,
		})
	}
	saved, err := i.store.GetSupportRequest(id)
	if err != nil {
		return view, err
	}
	return executionapimodels.SupportRequestConvert(*saved), nil
}

func (i impl) ResolveSupportRequest(supportID string, adminID string, approve bool) (view executionapimodels.SupportRequestView, err error) {
	rec, err := i.store.GetSupportRequest(supportID)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.NewReferentialIntegrity("support request %v not found", supportID)
	}
	if rec.Status != models.SupportPending {
		return view, models.NewPreconditionFailed("support request is already resolved")
	}
	status := models.SupportApproved
	if !approve {
		status = models.SupportRejected
	}
	now := i.now()
	err = i.store.UpdateSupportRequest(rec.ID, map[string]interface{}{
		"status":      status,
		"resolved_by": adminID,
		"resolved_at": now,
	})
	if err != nil {
		return view, err
	}
	if notification.Instance != nil {
		notification.Instance.Notify(dbmodels.PushData{
			ToUserID: rec.RequestedBy,
			Code:     dbmodels.PushSupportResolved,
			Msg:      string(status),
		})
	}
	saved, err := i.store.GetSupportRequest(rec.ID)
	if err != nil {
		return view, err
	}
	return executionapimodels.SupportRequestConvert(*saved), nil
}
