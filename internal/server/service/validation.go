package service

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

// RegisterInput: данные регистрации.
type RegisterInput struct {
	Name     string `json:"name" validate:"min=3" msg:"Enter a valid name"`
	Email    string `json:"email" validate:"required,email" msg:"Enter a valid email"`
	Password string `json:"password" validate:"min=5,maxbytes=72" msg:"Password must be at least 5 characters long" msg_maxbytes:"Password must be at most 72 bytes long"`
}

// LoginInput: данные входа.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email" msg:"Enter a valid email"`
	Password string `json:"password" validate:"required" msg:"Password cannot be blank"`
}

// NoteInput: данные новой заметки. Tag необязателен.
type NoteInput struct {
	Title       string `json:"title" validate:"min=3" msg:"Title must be at least 3 characters long"`
	Description string `json:"description" validate:"min=5" msg:"Description must be at least 5 characters long"`
	Tag         string `json:"tag"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках хотим имя поля из json, а не из Go
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// длина строки в байтах, min/max считают руны
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= n
	})
	return v
}

// validateInput проверяет структуру по тегам validate и собирает
// все ошибки полей в *serr.ValidationError. Текст ошибки берётся из тега
// msg_<правило>, а если его нет, из тега msg.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return serr.Internal(err)
	}

	t := reflect.TypeOf(in)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	fields := make([]serr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Error()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if m := sf.Tag.Get("msg_" + fe.Tag()); m != "" {
				msg = m
			} else if m := sf.Tag.Get("msg"); m != "" {
				msg = m
			}
		}
		fields = append(fields, serr.FieldError{
			Value:    fe.Value(),
			Msg:      msg,
			Param:    fe.Field(),
			Location: "body",
		})
	}
	return &serr.ValidationError{Fields: fields}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
