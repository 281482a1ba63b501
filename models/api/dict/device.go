package dictapimodels

import (
	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
)

type DeviceData struct {
	Name       string `json:"name"`
	Code       string `json:"code"`
	Company    string `json:"company"`
	Department string `json:"department"`
	Location   string `json:"location"`
}

func (d DeviceData) Validate() error {
	if d.Name == "" {
		return errors.New("name is required")
	}
	if d.Code == "" {
		return errors.New("code is required")
	}
	return nil
}

type DeviceView struct {
	DeviceData
	ID string `json:"id"`
}

type DeviceFind struct {
	Search     string `json:"search"`
	Company    string `json:"company"`
	Department string `json:"department"`
}

func DeviceConvert(rec dbmodels.Device) DeviceView {
	return DeviceView{
		DeviceData: DeviceData{
			Name:       rec.Name,
			Code:       rec.Code,
			Company:    rec.Company,
			Department: rec.Department,
			Location:   rec.Location,
		},
		ID: rec.ID,
	}
}
