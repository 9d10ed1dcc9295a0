// Package validation собирает нарушения ограничений входных данных, чтобы вернуть их клиенту все сразу.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const phonePunct = "+()-. "

// Violation описывает одно нарушенное ограничение.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors - набор нарушений. Пустой набор ошибкой не является, см. Err.
type Errors []Violation

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Field + ": " + v.Message
	}
	return strings.Join(msgs, "; ")
}

func (e *Errors) Add(field, format string, args ...any) {
	*e = append(*e, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err возвращает nil, если нарушений нет.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e *Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

func (e *Errors) MinLen(field, value string, n int) {
	if utf8.RuneCountInString(value) < n {
		e.Add(field, "must be at least %d characters", n)
	}
}

// MinDigits принимает телефон в свободной записи: цифры плюс "+", скобки, дефис, точка и пробелы.
// Считаются только цифры.
func (e *Errors) MinDigits(field, value string, n int) {
	digits := 0
	for _, r := range value {
		switch {
		case unicode.IsDigit(r):
			digits++
		case strings.ContainsRune(phonePunct, r):
		default:
			e.Add(field, "may contain only digits, spaces and + ( ) - .")
			return
		}
	}
	if digits < n {
		e.Add(field, "must be at least %d digits", n)
	}
}

// MaxBytes ограничивает длину в байтах, а не в символах.
func (e *Errors) MaxBytes(field, value string, n int) {
	if len(value) > n {
		e.Add(field, "must be at most %d bytes", n)
	}
}

func (e *Errors) Email(field, value string) {
	if !IsEmail(value) {
		e.Add(field, "must be a valid email")
	}
}

// IsEmail принимает только голый адрес вида local@domain.tld, без отображаемого имени.
func IsEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndexByte(value, '@')
	domain := value[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
