package attribute

import (
	"time"
)

// Attribute types a definition may declare.
const (
	TypeText        = "Text"
	TypeRichText    = "Rich Text"
	TypeDate        = "Date"
	TypeDropdown    = "Dropdown"
	TypeMultiselect = "Multiselect"
	TypeCheckbox    = "Checkbox"
	TypeMapPerson   = "Map:Person"
)

var ValidTypes = []string{
	TypeText, TypeRichText, TypeDate,
	TypeDropdown, TypeMultiselect, TypeCheckbox, TypeMapPerson,
}

// Definition is a locally-defined custom attribute attached to exactly one
// assessment. MultiChoiceOptions is a comma-separated ordered list of option
// labels; MultiChoiceMandatory carries one numeric requirement code per
// option, positionally aligned.
type Definition struct {
	ID                   int64     `json:"id"`
	DefinitionType       string    `json:"definition_type"`
	DefinitionID         int64     `json:"definition_id"`
	Title                string    `json:"title"`
	AttributeType        string    `json:"attribute_type"`
	Mandatory            bool      `json:"mandatory"`
	DefaultValue         *string   `json:"default_value"`
	MultiChoiceOptions   *string   `json:"multi_choice_options"`
	MultiChoiceMandatory *string   `json:"multi_choice_mandatory"`
	CreatedAt            time.Time `json:"created_at"`
}

// Value is the recorded answer for one (definition, assessment) pair. At most
// one exists per pair. AttributeObjectID is set only for Map:Person values.
type Value struct {
	ID                int64     `json:"id"`
	CustomAttributeID int64     `json:"custom_attribute_id"`
	AttributableID    int64     `json:"attributable_id"`
	AttributeValue    string    `json:"attribute_value"`
	AttributeObjectID *int64    `json:"attribute_object_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CreateDefinitionRequest struct {
	Title                string  `json:"title" binding:"required"`
	AttributeType        string  `json:"attribute_type" binding:"required"`
	Mandatory            bool    `json:"mandatory"`
	DefaultValue         *string `json:"default_value"`
	MultiChoiceOptions   *string `json:"multi_choice_options"`
	MultiChoiceMandatory *string `json:"multi_choice_mandatory"`
}

type SetValueRequest struct {
	AttributeValue    string `json:"attribute_value" binding:"required"`
	AttributeObjectID *int64 `json:"attribute_object_id"`
}
