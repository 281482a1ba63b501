package matcher

import (
	"testing"
	"time"

	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var pickAt = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

func technician(id, name string, skills []string, shifts ...dbmodels.ShiftWindow) dbmodels.Technician {
	return dbmodels.Technician{
		BaseModel: dbmodels.BaseModel{ID: id},
		FullName:  name,
		Skills:    pq.StringArray(skills),
		Active:    true,
		Shifts:    shifts,
	}
}

func availableShift(startOffset, endOffset time.Duration) dbmodels.ShiftWindow {
	return dbmodels.ShiftWindow{
		Status:  models.ShiftAvailable,
		StartAt: pickAt.Add(startOffset),
		EndAt:   pickAt.Add(endOffset),
	}
}

func TestPick(t *testing.T) {
	t.Run(`filters by skill`, func(t *testing.T) {
		pool := []Candidate{
			{Technician: technician("t1", "An", []string{"điện"}, availableShift(-time.Hour, time.Hour))},
			{Technician: technician("t2", "Bình", []string{"cơ khí"}, availableShift(-time.Hour, time.Hour))},
		}
		best, skip := Pick(pool, "cơ khí", pickAt)
		require.Empty(t, skip)
		require.Equal(t, "t2", best.Technician.ID)
	})

	t.Run(`no skill match`, func(t *testing.T) {
		pool := []Candidate{
			{Technician: technician("t1", "An", []string{"điện"}, availableShift(-time.Hour, time.Hour))},
		}
		best, skip := Pick(pool, "điện lạnh", pickAt)
		require.Nil(t, best)
		require.Equal(t, SkipNoSkill, skip)
	})

	t.Run(`empty required skill accepts anyone`, func(t *testing.T) {
		pool := []Candidate{
			{Technician: technician("t1", "An", nil, availableShift(-time.Hour, time.Hour))},
		}
		best, skip := Pick(pool, "", pickAt)
		require.Empty(t, skip)
		require.Equal(t, "t1", best.Technician.ID)
	})

	t.Run(`requires a covering available shift`, func(t *testing.T) {
		offShift := dbmodels.ShiftWindow{
			Status:  models.ShiftBusy,
			StartAt: pickAt.Add(-time.Hour),
			EndAt:   pickAt.Add(time.Hour),
		}
		pool := []Candidate{
			{Technician: technician("t1", "An", []string{"điện"}, offShift)},
			{Technician: technician("t2", "Bình", []string{"điện"}, availableShift(time.Hour, 3*time.Hour))},
		}
		best, skip := Pick(pool, "điện", pickAt)
		require.Nil(t, best)
		require.Equal(t, SkipNoShift, skip)
	})

	t.Run(`lowest open load wins`, func(t *testing.T) {
		pool := []Candidate{
			{Technician: technician("t1", "An", []string{"điện"}, availableShift(-time.Hour, time.Hour)), OpenLoad: 3},
			{Technician: technician("t2", "Bình", []string{"điện"}, availableShift(-time.Hour, time.Hour)), OpenLoad: 1},
		}
		best, _ := Pick(pool, "điện", pickAt)
		require.Equal(t, "t2", best.Technician.ID)
	})

	t.Run(`equal load breaks on earlier shift start`, func(t *testing.T) {
		pool := []Candidate{
			{Technician: technician("t1", "An", []string{"điện"}, availableShift(-time.Hour, time.Hour)), OpenLoad: 1},
			{Technician: technician("t2", "Bình", []string{"điện"}, availableShift(-3*time.Hour, time.Hour)), OpenLoad: 1},
		}
		best, _ := Pick(pool, "điện", pickAt)
		require.Equal(t, "t2", best.Technician.ID)
	})

	t.Run(`full tie breaks on name for a stable order`, func(t *testing.T) {
		pool := []Candidate{
			{Technician: technician("t2", "Bình", []string{"điện"}, availableShift(-time.Hour, time.Hour)), OpenLoad: 1},
			{Technician: technician("t1", "An", []string{"điện"}, availableShift(-time.Hour, time.Hour)), OpenLoad: 1},
		}
		best, _ := Pick(pool, "điện", pickAt)
		require.Equal(t, "An", best.Technician.FullName)
	})

	t.Run(`shift boundary is half-open`, func(t *testing.T) {
		atEnd := availableShift(-2*time.Hour, 0)
		pool := []Candidate{
			{Technician: technician("t1", "An", []string{"điện"}, atEnd)},
		}
		best, skip := Pick(pool, "điện", pickAt)
		require.Nil(t, best)
		require.Equal(t, SkipNoShift, skip)

		atStart := availableShift(0, 2*time.Hour)
		pool[0].Technician.Shifts = []dbmodels.ShiftWindow{atStart}
		best, skip = Pick(pool, "điện", pickAt)
		require.Empty(t, skip)
		require.Equal(t, "t1", best.Technician.ID)
	})
}

func TestBumpLoad(t *testing.T) {
	pool := []Candidate{
		{Technician: technician("t1", "An", []string{"điện"}, availableShift(-time.Hour, time.Hour)), OpenLoad: 0},
		{Technician: technician("t2", "Bình", []string{"điện"}, availableShift(-time.Hour, time.Hour)), OpenLoad: 0},
	}

	// after t1 takes a request, the next pick prefers t2
	best, _ := Pick(pool, "điện", pickAt)
	require.Equal(t, "An", best.Technician.FullName)

	bumpLoad(pool, "t1")
	best, _ = Pick(pool, "điện", pickAt)
	require.Equal(t, "Bình", best.Technician.FullName)
}
