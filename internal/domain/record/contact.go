package record

import (
	"nodex/internal/domain/validation"
)

const (
	minContactTitleLen = 5
	minAboutDescLen    = 100
)

type ContactFields struct {
	Title     string `json:"title"`
	AboutDesc string `json:"aboutDesc"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Copyright string `json:"copyright"`
}

func (f ContactFields) Validate() error {
	var errs validation.Errors
	errs.MinLen("title", f.Title, minContactTitleLen)
	errs.MinLen("aboutDesc", f.AboutDesc, minAboutDescLen)
	errs.Required("address", f.Address)
	errs.Email("email", f.Email)
	errs.Required("copyright", f.Copyright)
	return errs.Err()
}

type ContactPatch struct {
	Title     *string `mapstructure:"title"`
	AboutDesc *string `mapstructure:"aboutDesc"`
	Address   *string `mapstructure:"address"`
	Email     *string `mapstructure:"email"`
	Copyright *string `mapstructure:"copyright"`
}

func (p ContactPatch) Validate() error {
	var errs validation.Errors
	if supplied(p.Title) {
		errs.MinLen("title", *p.Title, minContactTitleLen)
	}
	if supplied(p.AboutDesc) {
		errs.MinLen("aboutDesc", *p.AboutDesc, minAboutDescLen)
	}
	if supplied(p.Email) {
		errs.Email("email", *p.Email)
	}
	return errs.Err()
}

func (p ContactPatch) Apply(f ContactFields) ContactFields {
	if supplied(p.Title) {
		f.Title = *p.Title
	}
	if supplied(p.AboutDesc) {
		f.AboutDesc = *p.AboutDesc
	}
	if supplied(p.Address) {
		f.Address = *p.Address
	}
	if supplied(p.Email) {
		f.Email = *p.Email
	}
	if supplied(p.Copyright) {
		f.Copyright = *p.Copyright
	}
	return f
}

func (p ContactPatch) Fields() ContactFields {
	return p.Apply(ContactFields{})
}
