package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"roomboard/shared/failure"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var validate *val.Validate

// enumerated is implemented by closed value sets such as room status and room type.
type enumerated interface {
	IsValid() bool
}

func registerEnumValidation(field val.FieldLevel) bool {
	if value, ok := field.Field().Interface().(enumerated); ok {
		return value.IsValid()
	}

	return false
}

func registerDateValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(dateLayout, str)

	return err == nil
}

func registerNotBlankValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return strings.TrimSpace(str) != ""
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	err := validate.RegisterValidation("enum", registerEnumValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("date", registerDateValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("notblank", registerNotBlankValidation)
	if err != nil {
		panic(err)
	}
}

// Validate decodes a JSON request body into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateStruct reports the first violated rule as a 400 failure.
func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
