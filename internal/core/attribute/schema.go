package attribute

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(msgs, "; ")
}

func IsValidationError(err error) bool {
	var ve *ValidationErrors
	return errors.As(err, &ve)
}

func GetValidationErrors(err error) *ValidationErrors {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// valueSchema builds the JSON schema a value payload must satisfy for the
// definition's attribute type. Validation happens here, at write time; the
// matrix engine never re-validates.
func valueSchema(def *Definition) map[string]interface{} {
	var valueProp map[string]interface{}
	required := []string{"attribute_value"}

	switch def.AttributeType {
	case TypeDate:
		valueProp = map[string]interface{}{
			"type":    "string",
			"pattern": `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`,
		}
	case TypeCheckbox:
		valueProp = map[string]interface{}{
			"enum": []interface{}{"0", "1"},
		}
	case TypeDropdown:
		valueProp = map[string]interface{}{
			"enum": optionList(def),
		}
	case TypeMultiselect:
		valueProp = map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"enum": optionList(def),
			},
			"minItems": 1,
		}
	case TypeMapPerson:
		valueProp = map[string]interface{}{
			"type": "string",
		}
		required = append(required, "attribute_object_id")
	default: // Text, Rich Text
		valueProp = map[string]interface{}{
			"type": "string",
		}
	}

	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"attribute_value": valueProp,
			"attribute_object_id": map[string]interface{}{
				"type":    "integer",
				"minimum": 1,
			},
		},
		"required": required,
	}
}

// valueDocument shapes the incoming request into the document validated
// against valueSchema. Multiselect answers are stored comma-separated but
// validated option by option.
func valueDocument(def *Definition, req *SetValueRequest) map[string]interface{} {
	doc := map[string]interface{}{}

	if def.AttributeType == TypeMultiselect {
		parts := strings.Split(req.AttributeValue, ",")
		selected := make([]interface{}, 0, len(parts))
		for _, p := range parts {
			selected = append(selected, p)
		}
		doc["attribute_value"] = selected
	} else {
		doc["attribute_value"] = req.AttributeValue
	}

	if req.AttributeObjectID != nil {
		doc["attribute_object_id"] = *req.AttributeObjectID
	}
	return doc
}

func validateValue(def *Definition, req *SetValueRequest) error {
	schemaLoader := gojsonschema.NewGoLoader(valueSchema(def))
	documentLoader := gojsonschema.NewGoLoader(valueDocument(def, req))

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return err
	}

	if !result.Valid() {
		var validationErrors []ValidationError
		for _, desc := range result.Errors() {
			validationErrors = append(validationErrors, ValidationError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return &ValidationErrors{Errors: validationErrors}
	}
	return nil
}

func optionList(def *Definition) []interface{} {
	if def.MultiChoiceOptions == nil || *def.MultiChoiceOptions == "" {
		return []interface{}{}
	}
	parts := strings.Split(*def.MultiChoiceOptions, ",")
	options := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		options = append(options, p)
	}
	return options
}
