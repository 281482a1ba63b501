package dbmodels

import (
	"maintenance-backend/models"
)

type RejectReason struct {
	BaseModel
	Gate models.RejectionGate `gorm:"type:varchar(20);index"`
	Name string               `gorm:"type:varchar(255)"`
}
