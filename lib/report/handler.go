package reporthandler

import (
	"bytes"
	"fmt"

	"maintenance-backend/db"
	acceptancestore "maintenance-backend/lib/acceptance/store"
	pdfexport "maintenance-backend/lib/export/pdf"
	xlsexport "maintenance-backend/lib/export/xls"
	requeststore "maintenance-backend/lib/request/store"
	"maintenance-backend/models"
	requestapimodels "maintenance-backend/models/api/request"

	"github.com/pkg/errors"
)

type Provider interface {
	// RequestRegister renders the filtered request list as an xlsx workbook.
	RequestRegister(filter requestapimodels.RequestListFilter) (*bytes.Buffer, error)
	// AcceptanceReport renders the acceptance protocol of a completed
	// request as a pdf.
	AcceptanceReport(requestID string) (fileName string, body []byte, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		requests:    requeststore.NewInstance(db.DB),
		acceptances: acceptancestore.NewInstance(db.DB),
	}
}

type impl struct {
	requests    requeststore.Provider
	acceptances acceptancestore.Provider
}

func (i impl) RequestRegister(filter requestapimodels.RequestListFilter) (*bytes.Buffer, error) {
	list, err := i.requests.List(filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list requests for export")
	}
	return xlsexport.Instance.ExportRequestRegister(list)
}

func (i impl) AcceptanceReport(requestID string) (string, []byte, error) {
	rec, err := i.requests.GetByID(requestID)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to load request")
	}
	if rec == nil {
		return "", nil, models.NewReferentialIntegrity("request %v not found", requestID)
	}
	list, err := i.acceptances.ListByRequest(requestID)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to load acceptance records")
	}
	if len(list) == 0 {
		return "", nil, models.NewPreconditionFailed("request %v has no acceptance record yet", rec.RequestCode)
	}
	latest := list[len(list)-1]
	body, err := pdfexport.GenerateAcceptanceReport(*rec, latest)
	if err != nil {
		return "", nil, err
	}
	fileName := fmt.Sprintf("bien-ban-nghiem-thu-%v.pdf", rec.RequestCode)
	return fileName, body, nil
}
