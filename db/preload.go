package db

import (
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"

	log "github.com/sirupsen/logrus"
)

var defaultRejectReasons = map[models.RejectionGate][]string{
	models.GateAssignment: {
		"Không đủ kỹ năng phù hợp",
		"Trùng lịch làm việc",
		"Đang xử lý yêu cầu khác",
	},
	models.GatePlanApproval: {
		"Giải pháp chưa phù hợp",
		"Chi phí vật tư quá cao",
		"Thiếu thông tin khảo sát",
	},
	models.GateAcceptance: {
		"Thiết bị chưa hoạt động ổn định",
		"Chưa hoàn thành đầy đủ hạng mục",
		"Chất lượng thi công chưa đạt",
	},
}

// PreloadDictData seeds the reject reason dictionary on an empty database.
func PreloadDictData() {
	var count int64
	err := DB.Model(&dbmodels.RejectReason{}).Count(&count).Error
	if err != nil {
		log.WithError(err).Error("reject reason dictionary check failed")
		return
	}
	if count > 0 {
		return
	}
	for gate, names := range defaultRejectReasons {
		for _, name := range names {
			rec := dbmodels.RejectReason{
				Gate: gate,
				Name: name,
			}
			if err := DB.Create(&rec).Error; err != nil {
				log.WithError(err).
					WithField("gate", gate).
					Error("reject reason seeding failed")
			}
		}
	}
	log.Info("reject reason dictionary seeded")
}
