package initializers

import (
	"context"

	"maintenance-backend/config"
	"maintenance-backend/fiberlog"
	autoassignworker "maintenance-backend/lib/auto-assign-worker"
	devicehandler "maintenance-backend/lib/dicts/device"
	issuehandler "maintenance-backend/lib/dicts/issue"
	rejectreasonhandler "maintenance-backend/lib/dicts/reject-reason"
	executionhandler "maintenance-backend/lib/execution"
	xlsexport "maintenance-backend/lib/export/xls"
	filestorage "maintenance-backend/lib/file-storage"
	"maintenance-backend/lib/lifecycle"
	"maintenance-backend/lib/matcher"
	materialshandler "maintenance-backend/lib/materials"
	"maintenance-backend/lib/notification"
	"maintenance-backend/lib/rbac"
	rejectionhandler "maintenance-backend/lib/rejection"
	reporthandler "maintenance-backend/lib/report"
	requesthandler "maintenance-backend/lib/request"
	technicianhandler "maintenance-backend/lib/technician"
	connectionhub "maintenance-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	rbac.NewHandler()
	notification.NewHandler()
	filestorage.NewHandler()
	xlsexport.NewHandler()
	rejectreasonhandler.NewHandler()
	devicehandler.NewHandler()
	issuehandler.NewHandler()
	requesthandler.NewHandler()
	rejectionhandler.NewHandler()
	lifecycle.NewHandler()
	executionhandler.NewHandler()
	materialshandler.NewHandler()
	technicianhandler.NewHandler()
	matcher.NewHandler()
	reporthandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	if *config.Conf.Worker.AutoAssignEnabled {
		// periodic sweep over the awaiting-assignment backlog
		autoassignworker.StartWorker(ctx)
	}
}
