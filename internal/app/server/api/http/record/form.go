package record

import (
	"fmt"
	"mime/multipart"
	"reflect"

	"nodex/internal/domain/record"
	"nodex/internal/domain/validation"

	"github.com/go-viper/mapstructure/v2"
)

const fileField = "file"

// firstValue сворачивает повторяющееся значение формы в скаляр, если поле не список.
func firstValue(from, to reflect.Type, data any) (any, error) {
	values, ok := data.([]string)
	if !ok || to.Kind() != reflect.String {
		return data, nil
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}

// decodePatch раскладывает значения формы по полям патча P согласно тегам mapstructure.
func decodePatch[P any](form *multipart.Form) (P, error) {
	var patch P

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &patch,
		TagName:    "mapstructure",
		DecodeHook: mapstructure.DecodeHookFuncType(firstValue),
	})
	if err != nil {
		return patch, fmt.Errorf("form decoder: %w", err)
	}
	if err := dec.Decode(form.Value); err != nil {
		var errs validation.Errors
		errs.Add("body", "malformed form: %v", err)
		return patch, errs
	}

	return patch, nil
}

// openUpload возвращает единственный файл запроса или nil. close нужно вызвать после обработки.
func openUpload(form *multipart.Form) (upload *record.Upload, close func(), err error) {
	noop := func() {}

	var errs validation.Errors
	for field := range form.File {
		if field != fileField {
			errs.Add(field, "unexpected file field, use %q", fileField)
		}
	}
	files := form.File[fileField]
	if len(files) > 1 {
		errs.Add(fileField, "only one file may be attached")
	}
	if err := errs.Err(); err != nil {
		return nil, noop, err
	}
	if len(files) == 0 {
		return nil, noop, nil
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open upload: %w", err)
	}
	return &record.Upload{Name: files[0].Filename, Content: f}, func() { f.Close() }, nil
}
