package matcher

import (
	"sort"
	"time"

	dbmodels "maintenance-backend/models/db"
)

// Candidate is a technician with the load observed at scoring time.
type Candidate struct {
	Technician dbmodels.Technician
	OpenLoad   int64
}

const (
	SkipNoSkill = "no active technician has the required skill"
	SkipNoShift = "no skilled technician is on shift"
)

// Pick scores the pool for one request and returns the best candidate, or
// nil with a skip reason. Eligibility: required skill and an AVAILABLE
// shift covering at. Ranking: fewest open assignments, then earliest
// covering shift start, then name for a stable order.
func Pick(pool []Candidate, requiredSkill string, at time.Time) (*Candidate, string) {
	skilled := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if c.Technician.HasSkill(requiredSkill) {
			skilled = append(skilled, c)
		}
	}
	if len(skilled) == 0 {
		return nil, SkipNoSkill
	}
	eligible := make([]Candidate, 0, len(skilled))
	for _, c := range skilled {
		if coveringShift(c.Technician, at) != nil {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return nil, SkipNoShift
	}
	sort.SliceStable(eligible, func(a, b int) bool {
		if eligible[a].OpenLoad != eligible[b].OpenLoad {
			return eligible[a].OpenLoad < eligible[b].OpenLoad
		}
		shiftA := coveringShift(eligible[a].Technician, at)
		shiftB := coveringShift(eligible[b].Technician, at)
		if !shiftA.StartAt.Equal(shiftB.StartAt) {
			return shiftA.StartAt.Before(shiftB.StartAt)
		}
		return eligible[a].Technician.FullName < eligible[b].Technician.FullName
	})
	return &eligible[0], ""
}

func coveringShift(tech dbmodels.Technician, at time.Time) *dbmodels.ShiftWindow {
	for idx := range tech.Shifts {
		if tech.Shifts[idx].Covers(at) {
			return &tech.Shifts[idx]
		}
	}
	return nil
}
