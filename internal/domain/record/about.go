package record

import (
	"nodex/internal/domain/validation"
)

type AboutFields struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Services    []string `json:"services"`
}

func (f AboutFields) Validate() error {
	var errs validation.Errors
	errs.Required("title", f.Title)
	errs.Required("description", f.Description)
	if len(nonEmpty(f.Services)) == 0 {
		errs.Add("services", "at least one service is required")
	}
	return errs.Err()
}

type AboutPatch struct {
	Title       *string  `mapstructure:"title"`
	Description *string  `mapstructure:"description"`
	Services    []string `mapstructure:"services"`
}

func (p AboutPatch) Validate() error {
	return nil
}

func (p AboutPatch) Apply(f AboutFields) AboutFields {
	if supplied(p.Title) {
		f.Title = *p.Title
	}
	if supplied(p.Description) {
		f.Description = *p.Description
	}
	if services := nonEmpty(p.Services); len(services) > 0 {
		f.Services = services
	}
	return f
}

func (p AboutPatch) Fields() AboutFields {
	return p.Apply(AboutFields{})
}
