package filestorage

import (
	"bytes"
	"context"
	"io"

	"maintenance-backend/config"
	"maintenance-backend/db"
	filestoragestore "maintenance-backend/lib/file-storage/store"
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"
	s3client "maintenance-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Provider interface {
	Upload(ctx context.Context, info dbmodels.UploadFileInfo, file []byte) (fileID string, err error)
	GetFile(ctx context.Context, fileID string) (rec *dbmodels.FileStorage, body []byte, err error)
	List(requestID string, fileType dbmodels.FileType) ([]dbmodels.FileStorage, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: filestoragestore.NewInstance(db.DB),
	}
}

type impl struct {
	store filestoragestore.Provider
}

// limitFor caps evidence per request and type; zero means unlimited.
func limitFor(fileType dbmodels.FileType) int64 {
	switch fileType {
	case dbmodels.RequestPhoto, dbmodels.SurveyPhoto, dbmodels.TaskEvidenceImage:
		return models.MaxAttachments
	case dbmodels.TaskEvidenceVideo:
		return models.MaxTaskVideos
	}
	return 0
}

func (i impl) Upload(ctx context.Context, info dbmodels.UploadFileInfo, file []byte) (fileID string, err error) {
	if limit := limitFor(info.FileType); limit > 0 {
		count, err := i.store.CountByType(info.RequestID, info.FileType)
		if err != nil {
			return "", err
		}
		if count >= limit {
			return "", models.NewPreconditionFailed("at most %d files of type %v are allowed per request", limit, info.FileType)
		}
	}
	fileID, err = i.store.Create(dbmodels.FileStorage{
		Name:        info.FileName,
		RequestID:   info.RequestID,
		Type:        info.FileType,
		ContentType: info.ContentType,
	})
	if err != nil {
		return "", err
	}
	_, err = s3client.Client.PutObject(ctx, config.Conf.S3.BucketName, fileID,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: info.ContentType})
	if err != nil {
		return "", errors.Wrap(err, "file upload failed")
	}
	return fileID, nil
}

func (i impl) GetFile(ctx context.Context, fileID string) (rec *dbmodels.FileStorage, body []byte, err error) {
	rec, err = i.store.GetByID(fileID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, nil
	}
	obj, err := s3client.Client.GetObject(ctx, config.Conf.S3.BucketName, fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "file download failed")
	}
	defer obj.Close()
	body, err = io.ReadAll(obj)
	if err != nil {
		return nil, nil, errors.Wrap(err, "file read failed")
	}
	return rec, body, nil
}

func (i impl) List(requestID string, fileType dbmodels.FileType) ([]dbmodels.FileStorage, error) {
	return i.store.ListByRequest(requestID, fileType)
}
