package dbmodels

// IssueType maps a reported issue onto the skill the matcher requires.
type IssueType struct {
	BaseModel
	Name          string `gorm:"type:varchar(255)"`
	RequiredSkill string `gorm:"type:varchar(100)"`
}
