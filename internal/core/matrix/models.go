package matrix

import (
	"context"

	"github.com/auditgrid/auditgrid/internal/core/assessment"
	"github.com/auditgrid/auditgrid/internal/core/attribute"
)

// Cell is one assessment's answer (or lack of one) to one attribute row.
// Value is null exactly when no value is recorded for the pair.
// PreconditionsFailed is null both when nothing is required and when every
// requirement is satisfied.
type Cell struct {
	Value                 interface{} `json:"value"`
	AttributePersonID     *int64      `json:"attribute_person_id"`
	PreconditionsFailed   []string    `json:"preconditions_failed"`
	DefinitionID          int64       `json:"definition_id"`
	AttributeDefinitionID int64       `json:"attribute_definition_id"`
	MultiChoiceOptions    *string     `json:"multi_choice_options"`
	MultiChoiceMandatory  *string     `json:"multi_choice_mandatory"`
}

// Row is one logical custom attribute spanning every assessment that carries
// a definition with the same identity. Values is keyed by stringified
// assessment id.
type Row struct {
	Title         string           `json:"title"`
	Mandatory     bool             `json:"mandatory"`
	AttributeType string           `json:"attribute_type"`
	DefaultValue  *string          `json:"default_value"`
	Values        map[string]*Cell `json:"values"`
}

type Response struct {
	Attributes  []*Row                `json:"attributes"`
	Assessments []*assessment.Summary `json:"assessments"`
}

// Narrow read interfaces the engine consumes. The surrounding services
// satisfy them; the engine never sees the storage layer.
type DefinitionSource interface {
	DefinitionsForAssessments(ctx context.Context, ids []int64) ([]*attribute.Definition, error)
}

type ValueSource interface {
	ValuesForDefinitions(ctx context.Context, defIDs []int64) ([]*attribute.Value, error)
}

type ArtifactSource interface {
	ArtifactFlagsByIDs(ctx context.Context, ids []int64) (map[int64]assessment.ArtifactFlags, error)
}

type SummarySource interface {
	SummariesByIDs(ctx context.Context, ids []int64) ([]*assessment.Summary, error)
}
