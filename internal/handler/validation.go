package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

const bodyLoc = "body"

var errMalformedBody = errors.New("request body is not a single JSON document")

// bindJSONBody is ShouldBindJSON with one difference: the body must be exactly
// one JSON value, so anything trailing it is rejected.
func bindJSONBody(c *gin.Context, target any) error {
	raw, err := c.GetRawData()
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return io.EOF
	}
	if !gjson.ValidBytes(raw) {
		return errMalformedBody
	}
	return binding.JSON.BindBody(raw, target)
}

// validationDetails converts a binding error into field-level details. The
// shape mirrors what browser clients of this API already parse.
func validationDetails(err error, target any) []ValidationDetail {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, ValidationDetail{
				Loc:  []string{bodyLoc, jsonFieldName(target, fe.StructField())},
				Msg:  "Field required and must be a non-empty string",
				Type: "missing",
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{bodyLoc}
		if typeErr.Field != "" {
			loc = append(loc, typeErr.Field)
		}
		return []ValidationDetail{{
			Loc:  loc,
			Msg:  "Input should be a valid " + expectedType(typeErr),
			Type: "type_error",
		}}
	}

	if errors.Is(err, io.EOF) {
		return []ValidationDetail{{
			Loc:  []string{bodyLoc},
			Msg:  "Field required",
			Type: "missing",
		}}
	}

	return []ValidationDetail{{
		Loc:  []string{bodyLoc},
		Msg:  "JSON decode error",
		Type: "json_invalid",
	}}
}

func expectedType(typeErr *json.UnmarshalTypeError) string {
	if typeErr.Type == nil {
		return "value"
	}
	if typeErr.Type.Kind() == reflect.Struct {
		return "object"
	}
	return typeErr.Type.Kind().String()
}

func jsonFieldName(target any, structField string) string {
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if field, ok := t.FieldByName(structField); ok {
		if name, _, _ := strings.Cut(field.Tag.Get("json"), ","); name != "" {
			return name
		}
	}
	return strings.ToLower(structField)
}
