package initializers

import (
	"context"

	s3client "maintenance-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	if err := s3client.Connect(ctx); err != nil {
		// uploads will fail, the rest of the service still works
		log.WithError(err).Error("failed to init the S3 client")
		return
	}
	log.Info("S3 client initialized")
}
