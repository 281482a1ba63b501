package lifecycle

import (
	"context"
	"time"

	"maintenance-backend/db"
	"maintenance-backend/lib/notification"
	"maintenance-backend/models"
	requestapimodels "maintenance-backend/models/api/request"
	dbmodels "maintenance-backend/models/db"

	"maintenance-backend/lib/utils/lock"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Transition(ctx context.Context, requestID string, event models.TransitionEvent, actor Actor, payload requestapimodels.TransitionPayload) (requestapimodels.TransitionResult, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{}
}

type impl struct{}

const lockWait = 5 * time.Second

func lockKey(requestID string) string {
	return "request:" + requestID
}

// Transition runs one lifecycle event: lock per request, decide, apply the
// decision's effects and the status write in one database transaction.
func (h impl) Transition(ctx context.Context, requestID string, event models.TransitionEvent, actor Actor, payload requestapimodels.TransitionPayload) (result requestapimodels.TransitionResult, err error) {
	logger := log.
		WithField("request_id", requestID).
		WithField("event", event)
	var notices []dbmodels.PushData
	locked, err := lock.WithDelay(ctx, lockKey(requestID), lockWait, func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			var txErr error
			result, notices, txErr = newTxHandler(tx).transition(requestID, event, actor, payload)
			return txErr
		})
	})
	if err != nil {
		if _, taxonomy := models.KindOf(err); !taxonomy {
			logger.WithError(err).Error("transition failed")
		}
		return result, err
	}
	if !locked {
		return result, models.NewConflict("request %v is busy, try again", requestID)
	}
	logger.Infof("request moved to %v", result.NewStatus)
	if notification.Instance != nil {
		for _, n := range notices {
			notification.Instance.Notify(n)
		}
	}
	return result, nil
}
