package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"stayhub/shared/constant"
	"stayhub/shared/failure"
	"stayhub/shared/money"
)

const (
	formTag  = "form"
	megabyte = 1 << 20
)

var (
	validate    *val.Validate
	formDecoder *schema.Decoder
)

// registerMimetypeValidation checks an uploaded part's declared content type
// against a space separated allow list.
func registerMimetypeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	contentType := strings.ToLower(file.Header.Get(constant.RequestHeaderContentType))

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

// registerFileSizeValidation caps an uploaded part at param megabytes.
func registerFileSizeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= maxSizeMB*megabyte
}

// fieldName reports fields by their wire name so messages match what the client sent.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", formTag} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != constant.Empty && name != "-" {
			return name
		}
	}

	return field.Name
}

func layoutValidation(layout string) val.Func {
	return func(field val.FieldLevel) bool {
		str, ok := field.Field().Interface().(string)
		if !ok {
			return false
		}

		_, err := time.Parse(layout, str)

		return err == nil
	}
}

// registerAmountValidation accepts decimal strings and money.Amount values that are not negative.
func registerAmountValidation(field val.FieldLevel) bool {
	switch value := field.Field().Interface().(type) {
	case money.Amount:
		return !value.IsNegative()
	case string:
		amount, err := money.Parse(value)

		return err == nil && !amount.IsNegative()
	default:
		return false
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)

	validations := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"date":        layoutValidation(constant.DateOnly),
		"month":       layoutValidation(constant.MonthOnly),
		"amount":      registerAmountValidation,
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	formDecoder = schema.NewDecoder()
	formDecoder.SetAliasTag(formTag)
	formDecoder.IgnoreUnknownKeys(true)
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateForm decodes url-encoded values (query string or multipart fields) into data
// using its `form` tags, then validates it.
func ValidateForm[T any](values url.Values, data *T) error {
	if err := formDecoder.Decode(data, values); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode form: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
