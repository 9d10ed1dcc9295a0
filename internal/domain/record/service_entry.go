package record

import (
	"nodex/internal/domain/validation"
)

const (
	minServiceTitleLen       = 5
	minServiceDescriptionLen = 100
)

// ServiceFields - карточка услуги.
type ServiceFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (f ServiceFields) Validate() error {
	var errs validation.Errors
	errs.MinLen("title", f.Title, minServiceTitleLen)
	errs.MinLen("description", f.Description, minServiceDescriptionLen)
	return errs.Err()
}

type ServicePatch struct {
	Title       *string `mapstructure:"title"`
	Description *string `mapstructure:"description"`
}

func (p ServicePatch) Validate() error {
	var errs validation.Errors
	if supplied(p.Title) {
		errs.MinLen("title", *p.Title, minServiceTitleLen)
	}
	if supplied(p.Description) {
		errs.MinLen("description", *p.Description, minServiceDescriptionLen)
	}
	return errs.Err()
}

func (p ServicePatch) Apply(f ServiceFields) ServiceFields {
	if supplied(p.Title) {
		f.Title = *p.Title
	}
	if supplied(p.Description) {
		f.Description = *p.Description
	}
	return f
}

func (p ServicePatch) Fields() ServiceFields {
	return p.Apply(ServiceFields{})
}
