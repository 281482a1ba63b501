package dbmodels

// Device is the equipment directory entry resolved for request display.
type Device struct {
	BaseModel
	Name       string `gorm:"type:varchar(255)"`
	Code       string `gorm:"type:varchar(50);uniqueIndex"`
	Company    string `gorm:"type:varchar(255)"`
	Department string `gorm:"type:varchar(255)"`
	Location   string
}
