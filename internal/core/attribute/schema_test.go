package attribute

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func defOfType(attributeType string) *Definition {
	def := &Definition{
		ID:             1,
		DefinitionType: "Assessment",
		DefinitionID:   100,
		Title:          "CAD " + attributeType,
		AttributeType:  attributeType,
	}
	if attributeType == TypeDropdown || attributeType == TypeMultiselect {
		def.MultiChoiceOptions = strPtr("1,3,2")
	}
	return def
}

func TestValidateValueAccepts(t *testing.T) {
	personID := int64(7)
	tests := []struct {
		name string
		def  *Definition
		req  *SetValueRequest
	}{
		{"text", defOfType(TypeText), &SetValueRequest{AttributeValue: "free text"}},
		{"rich text", defOfType(TypeRichText), &SetValueRequest{AttributeValue: "<p>hi</p>"}},
		{"date", defOfType(TypeDate), &SetValueRequest{AttributeValue: "2026-08-26"}},
		{"checkbox on", defOfType(TypeCheckbox), &SetValueRequest{AttributeValue: "1"}},
		{"checkbox off", defOfType(TypeCheckbox), &SetValueRequest{AttributeValue: "0"}},
		{"dropdown option", defOfType(TypeDropdown), &SetValueRequest{AttributeValue: "3"}},
		{"multiselect options", defOfType(TypeMultiselect), &SetValueRequest{AttributeValue: "1,2"}},
		{"map person", defOfType(TypeMapPerson), &SetValueRequest{AttributeValue: "Person", AttributeObjectID: &personID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateValue(tt.def, tt.req); err != nil {
				t.Errorf("expected valid, got %v", err)
			}
		})
	}
}

func TestValidateValueRejects(t *testing.T) {
	tests := []struct {
		name string
		def  *Definition
		req  *SetValueRequest
	}{
		{"malformed date", defOfType(TypeDate), &SetValueRequest{AttributeValue: "26/08/2026"}},
		{"checkbox out of range", defOfType(TypeCheckbox), &SetValueRequest{AttributeValue: "yes"}},
		{"dropdown unknown option", defOfType(TypeDropdown), &SetValueRequest{AttributeValue: "4"}},
		{"multiselect unknown option", defOfType(TypeMultiselect), &SetValueRequest{AttributeValue: "1,9"}},
		{"map person without object id", defOfType(TypeMapPerson), &SetValueRequest{AttributeValue: "Person"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateValue(tt.def, tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !IsValidationError(err) {
				t.Errorf("expected *ValidationErrors, got %T: %v", err, err)
			}
			if ve := GetValidationErrors(err); ve == nil || len(ve.Errors) == 0 {
				t.Errorf("expected error details, got %+v", ve)
			}
		})
	}
}
