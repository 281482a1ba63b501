package dbmodels

type FileStorage struct {
	BaseModel
	Name        string
	RequestID   string `gorm:"type:varchar(36);index"`
	Type        FileType
	ContentType string
}

type FileType string

const (
	RequestPhoto      FileType = "request_photo"
	SurveyPhoto       FileType = "survey_photo"
	TaskEvidenceImage FileType = "task_evidence_image"
	TaskEvidenceVideo FileType = "task_evidence_video"
	AcceptanceReport  FileType = "acceptance_report"
)

type UploadFileInfo struct {
	RequestID   string
	FileName    string
	FileType    FileType
	ContentType string
}
