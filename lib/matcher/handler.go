package matcher

import (
	"context"
	"time"

	assignmentstore "maintenance-backend/lib/assignment/store"
	"maintenance-backend/db"
	"maintenance-backend/lib/lifecycle"
	requeststore "maintenance-backend/lib/request/store"
	technicianstore "maintenance-backend/lib/technician/store"
	"maintenance-backend/models"
	requestapimodels "maintenance-backend/models/api/request"
	technicianapimodels "maintenance-backend/models/api/technician"
	dbmodels "maintenance-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// AutoAssign picks a technician for one awaiting request and assigns
	// them through the lifecycle on behalf of the system user.
	AutoAssign(ctx context.Context, requestID string, at time.Time) (technicianapimodels.AssignmentResult, error)
	// AutoAssignAll walks the whole awaiting backlog by priority then age.
	// A request with no eligible technician is skipped, not an error.
	AutoAssignAll(ctx context.Context, at time.Time) ([]technicianapimodels.AssignmentResult, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		requests:    requeststore.NewInstance(db.DB),
		technicians: technicianstore.NewInstance(db.DB),
		assignments: assignmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	requests    requeststore.Provider
	technicians technicianstore.Provider
	assignments assignmentstore.Provider
}

func (i impl) loadPool() ([]Candidate, error) {
	techs, err := i.technicians.ListActive()
	if err != nil {
		return nil, err
	}
	pool := make([]Candidate, 0, len(techs))
	for _, tech := range techs {
		load, err := i.assignments.CountOpenByTechnician(tech.ID)
		if err != nil {
			return nil, err
		}
		pool = append(pool, Candidate{Technician: tech, OpenLoad: load})
	}
	return pool, nil
}

func requiredSkill(rec dbmodels.MaintenanceRequest) string {
	if rec.IssueType == nil {
		return ""
	}
	return rec.IssueType.RequiredSkill
}

func (i impl) AutoAssign(ctx context.Context, requestID string, at time.Time) (result technicianapimodels.AssignmentResult, err error) {
	rec, err := i.requests.GetByID(requestID)
	if err != nil {
		return result, err
	}
	if rec == nil {
		return result, models.NewReferentialIntegrity("request %v not found", requestID)
	}
	pool, err := i.loadPool()
	if err != nil {
		return result, err
	}
	result, err = i.assignOne(ctx, *rec, pool, at)
	if err != nil {
		return result, err
	}
	if !result.Assigned {
		return result, models.NewNoEligibleTechnician(requestID)
	}
	return result, nil
}

func (i impl) AutoAssignAll(ctx context.Context, at time.Time) ([]technicianapimodels.AssignmentResult, error) {
	backlog, err := i.requests.ListAwaitingAssignment()
	if err != nil {
		return nil, err
	}
	pool, err := i.loadPool()
	if err != nil {
		return nil, err
	}
	results := make([]technicianapimodels.AssignmentResult, 0, len(backlog))
	for _, rec := range backlog {
		result, err := i.assignOne(ctx, rec, pool, at)
		if err != nil {
			// A lost race on one request must not stall the batch.
			if kind, taxonomy := models.KindOf(err); taxonomy {
				result = technicianapimodels.AssignmentResult{
					RequestID:   rec.ID,
					RequestCode: rec.RequestCode,
					SkipReason:  string(kind),
				}
			} else {
				return nil, err
			}
		}
		if result.Assigned {
			bumpLoad(pool, result.TechnicianID)
		}
		results = append(results, result)
	}
	return results, nil
}

func (i impl) assignOne(ctx context.Context, rec dbmodels.MaintenanceRequest, pool []Candidate, at time.Time) (technicianapimodels.AssignmentResult, error) {
	result := technicianapimodels.AssignmentResult{
		RequestID:   rec.ID,
		RequestCode: rec.RequestCode,
	}
	best, skipReason := Pick(pool, requiredSkill(rec), at)
	if best == nil {
		result.SkipReason = skipReason
		log.
			WithField("request_id", rec.ID).
			WithField("skip_reason", skipReason).
			Info("auto-assign skipped request")
		return result, nil
	}
	actor := lifecycle.Actor{ID: models.SystemUser, Role: models.AdminRole}
	payload := requestapimodels.TransitionPayload{
		Assign: &requestapimodels.AssignData{
			TechnicianID: best.Technician.ID,
			IsMain:       true,
		},
	}
	_, err := lifecycle.Instance.Transition(ctx, rec.ID, models.EventAssign, actor, payload)
	if err != nil {
		return result, err
	}
	result.TechnicianID = best.Technician.ID
	result.Assigned = true
	return result, nil
}

// bumpLoad keeps within-batch scores honest: an assignment made earlier in
// the run counts as load for the requests that follow.
func bumpLoad(pool []Candidate, technicianID string) {
	for idx := range pool {
		if pool[idx].Technician.ID == technicianID {
			pool[idx].OpenLoad++
			return
		}
	}
}
