package dbmodels

import (
	"time"

	"maintenance-backend/models"

	"github.com/lib/pq"
)

// Technician is the directory entry the matcher scores against.
type Technician struct {
	BaseModel
	FullName string         `gorm:"type:varchar(255)"`
	Phone    string         `gorm:"type:varchar(50)"`
	Email    string         `gorm:"type:varchar(255)"`
	Skills   pq.StringArray `gorm:"type:text[]"`
	Active   bool           `gorm:"default:true"`

	Shifts []ShiftWindow `gorm:"foreignKey:TechnicianID"`
}

func (t Technician) HasSkill(skill string) bool {
	if skill == "" {
		return true
	}
	for _, s := range t.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

type ShiftWindow struct {
	BaseModel
	TechnicianID string             `gorm:"type:varchar(36);index"`
	Status       models.ShiftStatus `gorm:"type:varchar(20)"`
	StartAt      time.Time          `gorm:"index"`
	EndAt        time.Time
}

// Covers reports whether the window is an AVAILABLE slot containing at.
func (w ShiftWindow) Covers(at time.Time) bool {
	return w.Status == models.ShiftAvailable && !at.Before(w.StartAt) && at.Before(w.EndAt)
}
