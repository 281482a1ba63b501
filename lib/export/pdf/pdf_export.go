package pdfexport

import (
	"bytes"
	"fmt"

	dbmodels "maintenance-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateAcceptanceReport renders the signed-off acceptance protocol for a
// completed request. Fonts live in static/font/, UTF-8 is required for the
// Vietnamese labels.
func GenerateAcceptanceReport(rec dbmodels.MaintenanceRequest, acceptance dbmodels.Acceptance) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateAcceptanceReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.CellFormat(0, 12, "BIÊN BẢN NGHIỆM THU BẢO TRÌ", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(4)

	writeLine := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(55, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 8, value, "", "L", false)
	}

	writeLine("Mã yêu cầu:", rec.RequestCode)
	if rec.Device != nil {
		writeLine("Thiết bị:", rec.Device.Name)
	}
	if rec.IssueType != nil {
		writeLine("Loại sự cố:", rec.IssueType.Name)
	}
	writeLine("Trạng thái:", rec.Status.ToHuman())
	writeLine("Vị trí:", rec.LocationDetail)

	pdf.Ln(4)
	result := "Đạt"
	if !acceptance.Accepted {
		result = "Không đạt"
	}
	writeLine("Kết quả nghiệm thu:", result)
	writeLine("Đánh giá:", fmt.Sprintf("%d/5", acceptance.Rating))
	writeLine("Đúng tiến độ:", yesNo(acceptance.IsOnTime))
	writeLine("Chuyên nghiệp:", yesNo(acceptance.IsProfessional))
	writeLine("Thiết bị hoạt động:", yesNo(acceptance.IsDeviceWorking))
	if acceptance.Comment != "" {
		writeLine("Nhận xét:", acceptance.Comment)
	}
	writeLine("Ngày nghiệm thu:", acceptance.CreatedAt.Format("02.01.2006 15:04"))

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yesNo(v bool) string {
	if v {
		return "Có"
	}
	return "Không"
}
