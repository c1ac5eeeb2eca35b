package attribute

import (
	"context"
	"errors"
	"testing"
)

// These cases fail before any repository or collaborator is touched, so the
// service is constructed with nil dependencies.

func TestCreateDefinitionRejectsUnknownType(t *testing.T) {
	svc := NewService(nil, nil, nil)

	_, err := svc.CreateDefinition(context.Background(), 1, &CreateDefinitionRequest{
		Title:         "Weight",
		AttributeType: "Number",
	})
	if !errors.Is(err, ErrInvalidType) {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}
}

func TestCreateDefinitionRequiresOptionsForMultiChoice(t *testing.T) {
	svc := NewService(nil, nil, nil)

	for _, attributeType := range []string{TypeDropdown, TypeMultiselect} {
		_, err := svc.CreateDefinition(context.Background(), 1, &CreateDefinitionRequest{
			Title:         "State",
			AttributeType: attributeType,
		})
		if !errors.Is(err, ErrOptionsRequired) {
			t.Errorf("%s: expected ErrOptionsRequired, got %v", attributeType, err)
		}
	}
}

func TestTypedDefaultForCheckbox(t *testing.T) {
	def := typedDefault(&CreateDefinitionRequest{AttributeType: TypeCheckbox})
	if def == nil || *def != "0" {
		t.Errorf("checkbox default should be %q, got %v", "0", def)
	}

	if d := typedDefault(&CreateDefinitionRequest{AttributeType: TypeText}); d != nil {
		t.Errorf("text default should be absent, got %q", *d)
	}

	explicit := "custom"
	d := typedDefault(&CreateDefinitionRequest{AttributeType: TypeCheckbox, DefaultValue: &explicit})
	if d == nil || *d != "custom" {
		t.Errorf("explicit default should win, got %v", d)
	}
}
