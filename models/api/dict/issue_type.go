package dictapimodels

import (
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
)

type IssueTypeData struct {
	Name          string `json:"name"`
	RequiredSkill string `json:"required_skill"`
}

func (d IssueTypeData) Validate() error {
	if d.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type IssueTypeView struct {
	IssueTypeData
	ID string `json:"id"`
}

func IssueTypeConvert(rec dbmodels.IssueType) IssueTypeView {
	return IssueTypeView{
		IssueTypeData: IssueTypeData{
			Name:          rec.Name,
			RequiredSkill: rec.RequiredSkill,
		},
		ID: rec.ID,
	}
}
