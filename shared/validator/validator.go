package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotelbook/shared/base64"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMB = 1 << 20

var (
	validate = val.New(val.WithRequiredStructEnabled())

	errTrailingData = errors.New("request body must hold a single JSON object")
)

// stringRule adapts a check on a string field and its tag parameter. Non-string fields fail.
func stringRule(check func(value, param string) bool) val.Func {
	return func(field val.FieldLevel) bool {
		value, ok := field.Field().Interface().(string)

		return ok && check(value, field.Param())
	}
}

// mimetypes=image/png image/jpeg accepts data urls of the listed content types.
func allowedMimetype(value, param string) bool {
	contentType := base64.GetContentType(value)

	return contentType != "" && slices.Contains(strings.Fields(param), contentType)
}

// maxfilesize=2 caps the decoded size of a data url at 2 MB.
func withinFileSize(value, param string) bool {
	maxMB, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}

	return float64(base64.DecodedLen(value)) <= maxMB*bytesPerMB
}

// calendardate accepts YYYY-MM-DD dates that exist.
func calendarDate(value, _ string) bool {
	_, err := time.Parse(constant.CalendarDate, value)

	return err == nil
}

func init() {
	validate.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]val.Func{
		"mimetypes":    stringRule(allowedMimetype),
		"maxfilesize":  stringRule(withinFileSize),
		"calendardate": stringRule(calendarDate),
	}

	for tag, rule := range rules {
		if err := validate.RegisterValidation(tag, rule); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
}

// Validate decodes one JSON object from r into data and validates it. Every failure is a 400.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) // nolint:wrapcheck
	}

	if decoder.More() {
		return failure.BadRequest(errTrailingData) // nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return asFailure(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return asFailure(validate.Var(field, tag))
}

// IsUUID reports whether id has the shape of a stored row id.
func IsUUID(id string) bool {
	return validate.Var(id, "uuid") == nil
}

func asFailure(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err)) // nolint:wrapcheck
}
