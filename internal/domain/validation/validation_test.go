package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_Err(t *testing.T) {
	var errs Errors
	require.NoError(t, errs.Err())

	errs.Add("title", "must be at least %d characters", 5)
	errs.Add("email", "must be a valid email")

	err := errs.Err()
	require.Error(t, err)
	assert.Equal(t, "title: must be at least 5 characters; email: must be a valid email", err.Error())

	var got Errors
	require.ErrorAs(t, err, &got)
	assert.Len(t, got, 2)
}

func TestErrors_Rules(t *testing.T) {
	tests := []struct {
		name  string
		apply func(e *Errors)
		want  int
	}{
		{name: "required ok", apply: func(e *Errors) { e.Required("f", "x") }},
		{name: "required blank", apply: func(e *Errors) { e.Required("f", "   ") }, want: 1},
		{name: "min len ok", apply: func(e *Errors) { e.MinLen("f", "héllo", 5) }},
		{name: "min len short", apply: func(e *Errors) { e.MinLen("f", "abcd", 5) }, want: 1},
		{name: "min len counts runes", apply: func(e *Errors) { e.MinLen("f", strings.Repeat("ж", 5), 5) }},
		{name: "digits ok", apply: func(e *Errors) { e.MinDigits("f", "9998887777", 10) }},
		{name: "digits short", apply: func(e *Errors) { e.MinDigits("f", "12345", 10) }, want: 1},
		{name: "digits letters", apply: func(e *Errors) { e.MinDigits("f", "99988877ab", 10) }, want: 1},
		{name: "digits with phone punctuation", apply: func(e *Errors) { e.MinDigits("f", "+1 (555) 010-0200", 10) }},
		{name: "punctuation does not count", apply: func(e *Errors) { e.MinDigits("f", "+1 (555) 010", 10) }, want: 1},
		{name: "digits counted as runes", apply: func(e *Errors) { e.MinDigits("f", "١٢٣٤٥٦٧٨٩٠", 10) }},
		{name: "max bytes ok", apply: func(e *Errors) { e.MaxBytes("f", strings.Repeat("a", 72), 72) }},
		{name: "max bytes counts bytes", apply: func(e *Errors) { e.MaxBytes("f", strings.Repeat("ж", 37), 72) }, want: 1},
		{name: "email ok", apply: func(e *Errors) { e.Email("f", "a@x.com") }},
		{name: "email bad", apply: func(e *Errors) { e.Email("f", "not-an-email") }, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs Errors
			tt.apply(&errs)
			assert.Len(t, errs, tt.want)
		})
	}
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@x.com", true},
		{"alice.smith+cms@mail.example.org", true},
		{"", false},
		{"a@x", false},
		{"a@x.", false},
		{"Alice <a@x.com>", false},
		{"@x.com", false},
		{"a x@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmail(tt.in))
		})
	}
}
