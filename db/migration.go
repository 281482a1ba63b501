package db

import (
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	for _, model := range []interface{}{
		&dbmodels.Device{},
		&dbmodels.IssueType{},
		&dbmodels.RejectReason{},
		&dbmodels.Technician{},
		&dbmodels.ShiftWindow{},
		&dbmodels.MaintenanceRequest{},
		&dbmodels.Assignment{},
		&dbmodels.RejectionLogEntry{},
		&dbmodels.Survey{},
		&dbmodels.Plan{},
		&dbmodels.MaterialLine{},
		&dbmodels.Execution{},
		&dbmodels.ExecutionTask{},
		&dbmodels.SupportRequest{},
		&dbmodels.Acceptance{},
		&dbmodels.FileStorage{},
		&dbmodels.PushData{},
	} {
		if err := DB.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "migration failed for %T", model)
		}
	}
	log.Info("migrations finished")
	return nil
}
