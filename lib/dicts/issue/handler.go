package issuehandler

import (
	"maintenance-backend/db"
	issuestore "maintenance-backend/lib/dicts/issue/store"
	"maintenance-backend/models"
	dictapimodels "maintenance-backend/models/api/dict"
	dbmodels "maintenance-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(data dictapimodels.IssueTypeData) (dictapimodels.IssueTypeView, error)
	Update(id string, data dictapimodels.IssueTypeData) (dictapimodels.IssueTypeView, error)
	List() ([]dictapimodels.IssueTypeView, error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithTx(nil)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	if tx == nil {
		tx = db.DB
	}
	return impl{
		store: issuestore.NewInstance(tx),
	}
}

type impl struct {
	store issuestore.Provider
}

func (i impl) Create(data dictapimodels.IssueTypeData) (view dictapimodels.IssueTypeView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	id, err := i.store.Create(dbmodels.IssueType{
		Name:          data.Name,
		RequiredSkill: data.RequiredSkill,
	})
	if err != nil {
		return view, err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	return dictapimodels.IssueTypeConvert(*rec), nil
}

func (i impl) Update(id string, data dictapimodels.IssueTypeData) (view dictapimodels.IssueTypeView, err error) {
	if err = data.Validate(); err != nil {
		return view, models.NewPreconditionFailed("%v", err)
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.NewReferentialIntegrity("issue type %v not found", id)
	}
	err = i.store.Update(id, map[string]interface{}{
		"name":           data.Name,
		"required_skill": data.RequiredSkill,
	})
	if err != nil {
		return view, err
	}
	saved, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	return dictapimodels.IssueTypeConvert(*saved), nil
}

func (i impl) List() ([]dictapimodels.IssueTypeView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	views := make([]dictapimodels.IssueTypeView, 0, len(list))
	for _, rec := range list {
		views = append(views, dictapimodels.IssueTypeConvert(rec))
	}
	return views, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.NewReferentialIntegrity("issue type %v not found", id)
	}
	return i.store.Delete(id)
}
