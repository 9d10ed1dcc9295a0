package user

import (
	"nodex/internal/domain/validation"
)

const (
	MinNameLen     = 5
	MinContactLen  = 10
	MinPasswordLen = 6
)

// MaxPasswordBytes - предел bcrypt, более длинные пароли он отвергает.
const MaxPasswordBytes = 72

// Validator - интерфейс для валидации пользовательских данных
type Validator interface {
	ValidateSignup(req SignupRequest) error
	ValidateLogin(req LoginRequest) error
}

type RulesValidator struct {
	minNameLen     int
	minContactLen  int
	minPasswordLen int
}

// NewValidator создает валидатор с ограничениями по умолчанию
func NewValidator() *RulesValidator {
	return &RulesValidator{
		minNameLen:     MinNameLen,
		minContactLen:  MinContactLen,
		minPasswordLen: MinPasswordLen,
	}
}

// ValidateSignup возвращает все нарушения сразу в виде validation.Errors
func (v *RulesValidator) ValidateSignup(req SignupRequest) error {
	var errs validation.Errors
	errs.MinLen("name", req.Name, v.minNameLen)
	errs.Email("email", req.Email)
	errs.MinDigits("contact", req.Contact, v.minContactLen)
	errs.MinLen("password", req.Password, v.minPasswordLen)
	errs.MaxBytes("password", req.Password, MaxPasswordBytes)
	return errs.Err()
}

func (v *RulesValidator) ValidateLogin(req LoginRequest) error {
	var errs validation.Errors
	errs.Email("email", req.Email)
	if req.Password == "" {
		errs.Add("password", "cannot be blank")
	}
	return errs.Err()
}
