package notification

import (
	"time"

	"maintenance-backend/db"
	pushdatastore "maintenance-backend/lib/push/data-store"
	"maintenance-backend/lib/smtp"
	technicianstore "maintenance-backend/lib/technician/store"
	connectionhub "maintenance-backend/lib/ws/hub/connection-hub"
	dbmodels "maintenance-backend/models/db"
	wsmodels "maintenance-backend/models/ws"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Notify is fire and forget: lifecycle outcomes never depend on
	// delivery, failures are only logged.
	Notify(rec dbmodels.PushData)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		pushStore:   pushdatastore.NewInstance(db.DB),
		technicians: technicianstore.NewInstance(db.DB),
	}
}

type impl struct {
	pushStore   pushdatastore.Provider
	technicians technicianstore.Provider
}

func (i impl) Notify(rec dbmodels.PushData) {
	go i.deliver(rec)
}

func (i impl) nowString() string {
	return time.Now().Format("02.01.2006 15:04:05")
}

func (i impl) deliver(rec dbmodels.PushData) {
	logger := log.
		WithField("user_id", rec.ToUserID).
		WithField("push_code", rec.Code)
	if connectionhub.Instance != nil && connectionhub.Instance.IsConnected(rec.ToUserID) {
		connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
			ToUserID: rec.ToUserID,
			Time:     i.nowString(),
			Code:     string(rec.Code),
			Msg:      rec.Msg,
		})
	} else {
		// Stored for replay when the user reconnects.
		if err := i.pushStore.Create(rec); err != nil {
			logger.WithError(err).Error("failed to store push event")
		}
	}
	if rec.Code == dbmodels.PushRequestAssigned {
		i.emailTechnician(rec, logger)
	}
}

// New assignments additionally go out by email, technicians are often away
// from the dashboard.
func (i impl) emailTechnician(rec dbmodels.PushData, logger *log.Entry) {
	if smtp.Instance == nil {
		return
	}
	tech, err := i.technicians.GetByID(rec.ToUserID)
	if err != nil {
		logger.WithError(err).Error("failed to resolve technician for email push")
		return
	}
	if tech == nil || tech.Email == "" {
		return
	}
	err = smtp.Instance.SendEMail("maintenance", tech.Email, rec.Msg, "Phân công mới")
	if err != nil {
		logger.WithError(err).Error("failed to email technician")
	}
}
