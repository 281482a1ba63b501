package xlsexport

import (
	"bytes"

	dbmodels "maintenance-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportRequestRegister(list []dbmodels.MaintenanceRequest) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var requestHeaders = []string{"Mã yêu cầu", "Thiết bị", "Loại sự cố", "Mức ưu tiên", "Loại bảo trì", "Trạng thái", "Vị trí", "Ngày tạo"}

func (i impl) ExportRequestRegister(list []dbmodels.MaintenanceRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, requestHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build xlsx header")
	}
	if len(list) != 0 {
		row, err = writeRequestData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Yêu cầu bảo trì")
	return f.WriteToBuffer()
}

func writeRequestData(f *excelize.File, sheet string, list []dbmodels.MaintenanceRequest, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(requestHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Mã yêu cầu"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.RequestCode); err != nil {
			return row, err
		}

		// "Thiết bị"
		col++
		if item.Device != nil {
			if err := writeColumn(f, sheet, col, row, item.Device.Name); err != nil {
				return row, err
			}
		}

		// "Loại sự cố"
		col++
		if item.IssueType != nil {
			if err := writeColumn(f, sheet, col, row, item.IssueType.Name); err != nil {
				return row, err
			}
		}

		// "Mức ưu tiên"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Priority)); err != nil {
			return row, err
		}

		// "Loại bảo trì"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Type)); err != nil {
			return row, err
		}

		// "Trạng thái"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Vị trí"
		col++
		if err := writeColumn(f, sheet, col, row, item.LocationDetail); err != nil {
			return row, err
		}

		// "Ngày tạo"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}
	}
	return row, nil
}
