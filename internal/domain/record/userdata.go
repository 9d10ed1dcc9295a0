package record

import (
	"nodex/internal/domain/validation"
)

const (
	minUserdataTitleLen   = 5
	minUserdataContentLen = 100
)

// UserdataFields - публикация пользователя.
type UserdataFields struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Categories []Category `json:"categories"`
}

func (f UserdataFields) Validate() error {
	var errs validation.Errors
	errs.MinLen("title", f.Title, minUserdataTitleLen)
	errs.MinLen("content", f.Content, minUserdataContentLen)
	if len(f.Categories) == 0 {
		errs.Add("categories", "choose one category")
	}
	validateCategories(&errs, f.Categories)
	return errs.Err()
}

type UserdataPatch struct {
	Title      *string  `mapstructure:"title"`
	Content    *string  `mapstructure:"content"`
	Categories []string `mapstructure:"categories"`
}

func (p UserdataPatch) Validate() error {
	var errs validation.Errors
	if supplied(p.Title) {
		errs.MinLen("title", *p.Title, minUserdataTitleLen)
	}
	if supplied(p.Content) {
		errs.MinLen("content", *p.Content, minUserdataContentLen)
	}
	validateCategories(&errs, p.categories())
	return errs.Err()
}

func (p UserdataPatch) Apply(f UserdataFields) UserdataFields {
	if supplied(p.Title) {
		f.Title = *p.Title
	}
	if supplied(p.Content) {
		f.Content = *p.Content
	}
	if cs := p.categories(); len(cs) > 0 {
		f.Categories = cs
	}
	return f
}

func (p UserdataPatch) Fields() UserdataFields {
	return p.Apply(UserdataFields{})
}

func (p UserdataPatch) categories() []Category {
	values := nonEmpty(p.Categories)
	if len(values) == 0 {
		return nil
	}
	out := make([]Category, len(values))
	for i, v := range values {
		out[i] = Category(v)
	}
	return out
}

func validateCategories(errs *validation.Errors, cs []Category) {
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			errs.Add("categories", "%q is not a known category", string(c))
		}
	}
}
