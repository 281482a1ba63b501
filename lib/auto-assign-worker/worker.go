package autoassignworker

import (
	"context"
	"time"

	"maintenance-backend/config"
	"maintenance-backend/lib/matcher"
	baseworker "maintenance-backend/lib/utils/base-worker"
)

// StartWorker periodically sweeps the awaiting-assignment backlog through
// the matcher. Every assignment goes through the same lifecycle path as a
// manual one.
func StartWorker(ctx context.Context) {
	interval := time.Duration(config.Conf.Worker.AutoAssignIntervalInSec) * time.Second
	i := &impl{
		BaseImpl: *baseworker.NewInstance("AutoAssignWorker", 15*time.Second, interval),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	results, err := matcher.Instance.AutoAssignAll(ctx, time.Now())
	if err != nil {
		logger.WithError(err).Error("auto-assign run failed")
		return
	}
	assigned := 0
	for _, result := range results {
		if result.Assigned {
			assigned++
		}
	}
	if len(results) > 0 {
		logger.
			WithField("backlog", len(results)).
			WithField("assigned", assigned).
			Info("auto-assign run finished")
	}
}
