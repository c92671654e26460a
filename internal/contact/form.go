package contact

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// 字段名，与请求体 JSON 字段一致
const (
	FieldFullName = "full_name"
	FieldSubject  = "subject"
	FieldEmail    = "email"
	FieldBody     = "body"
)

// 字段错误的消息键
const (
	MsgFullNameMin  = "contact.full_name_min"
	MsgSubjectMin   = "contact.subject_min"
	MsgEmailInvalid = "contact.email_invalid"
	MsgBodyMin      = "contact.body_min"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form 联系表单
type Form struct {
	FullName string `json:"full_name" validate:"textmin=3"`
	Subject  string `json:"subject" validate:"textmin=3"`
	Email    string `json:"email" validate:"simple_email"`
	Body     string `json:"body" validate:"textmin=3"`
}

// FieldErrors 字段名到消息键的映射
type FieldErrors map[string]string

var fieldMessages = map[string]string{
	FieldFullName: MsgFullNameMin,
	FieldSubject:  MsgSubjectMin,
	FieldEmail:    MsgEmailInvalid,
	FieldBody:     MsgBodyMin,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "textmin", validateTextMin)
	mustRegister(v, "simple_email", validateSimpleEmail)
	return v
}

// mustRegister 注册自定义规则，失败说明规则定义有误，直接 panic
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("contact: register validation %q: %v", tag, err))
	}
}

// TextLength 统计字母与数字的个数，空白与标点不计入
func TextLength(value string) int {
	n := 0
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func validateTextMin(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return TextLength(fl.Field().String()) >= limit
}

func validateSimpleEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// Validate 同时校验全部字段，返回所有不合法字段；表单合法时返回 nil
func (f Form) Validate() FieldErrors {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{FieldFullName: MsgFullNameMin, FieldSubject: MsgSubjectMin, FieldEmail: MsgEmailInvalid, FieldBody: MsgBodyMin}
	}
	out := make(FieldErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if key, ok := fieldMessages[fe.Field()]; ok {
			out[fe.Field()] = key
		}
	}
	return out
}

// Normalize 去除首尾空白
func (f Form) Normalize() Form {
	return Form{
		FullName: strings.TrimSpace(f.FullName),
		Subject:  strings.TrimSpace(f.Subject),
		Email:    strings.TrimSpace(f.Email),
		Body:     strings.TrimSpace(f.Body),
	}
}
