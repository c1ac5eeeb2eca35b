package matrix

import (
	"context"
	"strconv"

	"github.com/auditgrid/auditgrid/internal/core/assessment"
	"github.com/auditgrid/auditgrid/internal/core/attribute"
	"github.com/auditgrid/auditgrid/internal/core/person"
)

// Service is the matrix aggregation engine: a pure read-transform over the
// resolved assessment set. It performs one bulk read per concern and holds no
// state between invocations.
type Service struct {
	definitions DefinitionSource
	values      ValueSource
	artifacts   ArtifactSource
	summaries   SummarySource
}

func NewService(definitions DefinitionSource, values ValueSource, artifacts ArtifactSource, summaries SummarySource) *Service {
	return &Service{
		definitions: definitions,
		values:      values,
		artifacts:   artifacts,
		summaries:   summaries,
	}
}

// Build assembles the attribute matrix for the given ordered assessment ids.
// Row order is first-seen among loaded definitions; assessment order is the
// resolver's and is preserved as given.
func (s *Service) Build(ctx context.Context, ids []int64) (*Response, error) {
	resp := &Response{
		Attributes:  []*Row{},
		Assessments: []*assessment.Summary{},
	}
	if len(ids) == 0 {
		return resp, nil
	}

	summaries, err := s.summaries.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	resp.Assessments = summaries

	defs, err := s.definitions.DefinitionsForAssessments(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return resp, nil
	}

	groups := buildCatalog(defs)

	defIDs := make([]int64, 0, len(defs))
	for _, def := range defs {
		defIDs = append(defIDs, def.ID)
	}

	values, err := s.values.ValuesForDefinitions(ctx, defIDs)
	if err != nil {
		return nil, err
	}

	// A definition belongs to one assessment, so its id alone keys the value.
	// Values claiming a foreign assessment are dropped as inconsistent.
	valueByDef := make(map[int64]*attribute.Value, len(values))
	defByID := make(map[int64]*attribute.Definition, len(defs))
	for _, def := range defs {
		defByID[def.ID] = def
	}
	for _, val := range values {
		def, ok := defByID[val.CustomAttributeID]
		if !ok || def.DefinitionID != val.AttributableID {
			continue
		}
		valueByDef[val.CustomAttributeID] = val
	}

	flags, err := s.loadFlags(ctx, ids, defs, valueByDef)
	if err != nil {
		return nil, err
	}

	for _, group := range groups {
		for _, def := range group.defs {
			cell := resolveCell(def, valueByDef[def.ID], flags[def.DefinitionID])
			group.row.Values[strconv.FormatInt(def.DefinitionID, 10)] = cell
		}
		resp.Attributes = append(resp.Attributes, group.row)
	}

	return resp, nil
}

// loadFlags fetches artifact existence flags only when some recorded answer
// carries a requirement mask; otherwise no cell needs them.
func (s *Service) loadFlags(ctx context.Context, ids []int64, defs []*attribute.Definition, valueByDef map[int64]*attribute.Value) (map[int64]assessment.ArtifactFlags, error) {
	needed := false
	for _, def := range defs {
		if def.MultiChoiceMandatory == nil || *def.MultiChoiceMandatory == "" {
			continue
		}
		if _, ok := valueByDef[def.ID]; ok {
			needed = true
			break
		}
	}
	if !needed {
		return map[int64]assessment.ArtifactFlags{}, nil
	}
	return s.artifacts.ArtifactFlagsByIDs(ctx, ids)
}

// resolveCell maps one (definition, assessment) pair to its cell. Absent
// values yield a null-value cell with definition linkage only. Map:Person
// values project the referenced object's type label and person id instead of
// echoing the stored scalar.
func resolveCell(def *attribute.Definition, val *attribute.Value, flags assessment.ArtifactFlags) *Cell {
	cell := &Cell{
		DefinitionID:          def.DefinitionID,
		AttributeDefinitionID: def.ID,
		MultiChoiceOptions:    def.MultiChoiceOptions,
		MultiChoiceMandatory:  def.MultiChoiceMandatory,
	}
	if val == nil {
		return cell
	}

	if def.AttributeType == attribute.TypeMapPerson {
		cell.Value = person.TypeLabel
		cell.AttributePersonID = val.AttributeObjectID
		return cell
	}

	cell.Value = val.AttributeValue
	cell.PreconditionsFailed = failedPreconditions(def, val.AttributeValue, flags)
	return cell
}
