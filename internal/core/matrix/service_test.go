package matrix

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/auditgrid/auditgrid/internal/core/assessment"
	"github.com/auditgrid/auditgrid/internal/core/attribute"
)

// stubSources feeds the engine from in-memory fixtures, filtering the way
// the real bulk reads do.
type stubSources struct {
	defs      []*attribute.Definition
	values    []*attribute.Value
	flags     map[int64]assessment.ArtifactFlags
	summaries map[int64]*assessment.Summary

	flagLoads int
}

func (s *stubSources) DefinitionsForAssessments(_ context.Context, ids []int64) ([]*attribute.Definition, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*attribute.Definition
	for _, def := range s.defs {
		if wanted[def.DefinitionID] {
			out = append(out, def)
		}
	}
	return out, nil
}

func (s *stubSources) ValuesForDefinitions(_ context.Context, defIDs []int64) ([]*attribute.Value, error) {
	wanted := make(map[int64]bool, len(defIDs))
	for _, id := range defIDs {
		wanted[id] = true
	}
	var out []*attribute.Value
	for _, val := range s.values {
		if wanted[val.CustomAttributeID] {
			out = append(out, val)
		}
	}
	return out, nil
}

func (s *stubSources) ArtifactFlagsByIDs(_ context.Context, ids []int64) (map[int64]assessment.ArtifactFlags, error) {
	s.flagLoads++
	out := make(map[int64]assessment.ArtifactFlags)
	for _, id := range ids {
		out[id] = s.flags[id]
	}
	return out, nil
}

func (s *stubSources) SummariesByIDs(_ context.Context, ids []int64) ([]*assessment.Summary, error) {
	return assessment.OrderSummaries(ids, s.summaries), nil
}

func newFixture() *stubSources {
	return &stubSources{
		flags: map[int64]assessment.ArtifactFlags{},
		summaries: map[int64]*assessment.Summary{
			100: {AssessmentType: "Control", ID: 100, Slug: "ASSESSMENT-100", Title: "B assessment", Status: "Not Started"},
			200: {AssessmentType: "Control", ID: 200, Slug: "ASSESSMENT-200", Title: "C assessment", Status: "Not Started"},
			300: {AssessmentType: "Control", ID: 300, Slug: "ASSESSMENT-300", Title: "A assessment", Status: "Not Started"},
		},
	}
}

func buildOrFail(t *testing.T, src *stubSources, ids []int64) *Response {
	t.Helper()
	svc := NewService(src, src, src, src)
	resp, err := svc.Build(context.Background(), ids)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return resp
}

func TestBuildSingleDefinitionNoValue(t *testing.T) {
	src := newFixture()
	src.defs = []*attribute.Definition{textDef(1, 100, "Owner sign-off")}

	resp := buildOrFail(t, src, []int64{100})

	if len(resp.Attributes) != 1 {
		t.Fatalf("expected 1 row, got %d", len(resp.Attributes))
	}
	row := resp.Attributes[0]
	cell, ok := row.Values["100"]
	if !ok {
		t.Fatalf("expected cell keyed by stringified id, keys: %v", keysOf(row.Values))
	}
	if cell.Value != nil {
		t.Errorf("expected null value, got %v", cell.Value)
	}
	if cell.PreconditionsFailed != nil {
		t.Errorf("expected nil preconditions for unanswered cell, got %v", cell.PreconditionsFailed)
	}
	if cell.DefinitionID != 100 || cell.AttributeDefinitionID != 1 {
		t.Errorf("bad linkage: definition_id=%d attribute_definition_id=%d", cell.DefinitionID, cell.AttributeDefinitionID)
	}
	if len(resp.Assessments) != 1 || resp.Assessments[0].ID != 100 {
		t.Errorf("unexpected assessments: %+v", resp.Assessments)
	}
}

func TestBuildCollapsesAcrossAssessments(t *testing.T) {
	src := newFixture()
	src.defs = []*attribute.Definition{
		textDef(1, 100, "Owner sign-off"),
		textDef(2, 200, "Owner sign-off"),
	}
	src.values = []*attribute.Value{
		{ID: 1, CustomAttributeID: 1, AttributableID: 100, AttributeValue: "test_value"},
	}

	resp := buildOrFail(t, src, []int64{100, 200})

	if len(resp.Attributes) != 1 {
		t.Fatalf("expected 1 collapsed row, got %d", len(resp.Attributes))
	}
	row := resp.Attributes[0]
	if len(row.Values) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(row.Values))
	}
	if row.Values["100"].Value != "test_value" {
		t.Errorf("expected recorded value, got %v", row.Values["100"].Value)
	}
	if row.Values["200"].Value != nil {
		t.Errorf("expected null for unanswered assessment, got %v", row.Values["200"].Value)
	}
	if row.Values["200"].AttributeDefinitionID != 2 {
		t.Errorf("cell must link its own definition, got %d", row.Values["200"].AttributeDefinitionID)
	}
}

func TestBuildSeparateRowsKeepCellsScoped(t *testing.T) {
	src := newFixture()
	mandatory := textDef(2, 200, "Owner sign-off")
	mandatory.Mandatory = true
	src.defs = []*attribute.Definition{
		textDef(1, 100, "Owner sign-off"),
		mandatory,
	}

	resp := buildOrFail(t, src, []int64{100, 200})

	if len(resp.Attributes) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp.Attributes))
	}
	// Each row only carries cells for assessments that realize its identity.
	if len(resp.Attributes[0].Values) != 1 || resp.Attributes[0].Values["100"] == nil {
		t.Errorf("first row should have exactly one cell for 100")
	}
	if len(resp.Attributes[1].Values) != 1 || resp.Attributes[1].Values["200"] == nil {
		t.Errorf("second row should have exactly one cell for 200")
	}
}

func TestBuildMapPersonProjection(t *testing.T) {
	src := newFixture()
	personID := int64(42)
	def := textDef(1, 100, "Assignee")
	def.AttributeType = attribute.TypeMapPerson
	src.defs = []*attribute.Definition{def}
	src.values = []*attribute.Value{
		{ID: 1, CustomAttributeID: 1, AttributableID: 100, AttributeValue: "Person", AttributeObjectID: &personID},
	}

	resp := buildOrFail(t, src, []int64{100})

	cell := resp.Attributes[0].Values["100"]
	if cell.Value != "Person" {
		t.Errorf("expected type label value, got %v", cell.Value)
	}
	if cell.AttributePersonID == nil || *cell.AttributePersonID != 42 {
		t.Errorf("expected attribute_person_id 42, got %v", cell.AttributePersonID)
	}
	if cell.PreconditionsFailed != nil {
		t.Errorf("expected nil preconditions, got %v", cell.PreconditionsFailed)
	}
}

func TestBuildPreconditionVerdictChangesWithArtifacts(t *testing.T) {
	def := dropdownDef("1,3,2", "4,4")
	def.DefinitionID = 100
	def.ID = 1

	src := newFixture()
	src.defs = []*attribute.Definition{def}
	src.values = []*attribute.Value{
		{ID: 1, CustomAttributeID: 1, AttributableID: 100, AttributeValue: "1"},
	}

	resp := buildOrFail(t, src, []int64{100})
	cell := resp.Attributes[0].Values["100"]
	if !reflect.DeepEqual(cell.PreconditionsFailed, []string{"url"}) {
		t.Fatalf("expected [url], got %v", cell.PreconditionsFailed)
	}

	// A new request after url evidence was attached flips the verdict.
	src.flags[100] = assessment.ArtifactFlags{HasEvidence: true, HasURL: true}
	resp = buildOrFail(t, src, []int64{100})
	cell = resp.Attributes[0].Values["100"]
	if cell.PreconditionsFailed != nil {
		t.Errorf("expected nil after evidence attached, got %v", cell.PreconditionsFailed)
	}
}

func TestBuildSkipsFlagLoadWithoutMaskedValues(t *testing.T) {
	src := newFixture()
	src.defs = []*attribute.Definition{textDef(1, 100, "Owner sign-off")}

	buildOrFail(t, src, []int64{100})
	if src.flagLoads != 0 {
		t.Errorf("artifact flags should not load when no answered cell has a mask, loads=%d", src.flagLoads)
	}
}

func TestBuildDropsInconsistentValue(t *testing.T) {
	src := newFixture()
	src.defs = []*attribute.Definition{textDef(1, 100, "Owner sign-off")}
	src.values = []*attribute.Value{
		// Claims an assessment the definition is not attached to.
		{ID: 1, CustomAttributeID: 1, AttributableID: 200, AttributeValue: "stray"},
	}

	resp := buildOrFail(t, src, []int64{100, 200})
	cell := resp.Attributes[0].Values["100"]
	if cell.Value != nil {
		t.Errorf("inconsistent value must not surface, got %v", cell.Value)
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	src := newFixture()

	resp := buildOrFail(t, src, nil)
	if len(resp.Attributes) != 0 || len(resp.Assessments) != 0 {
		t.Errorf("expected empty response, got %+v", resp)
	}

	// Serialized form uses [] rather than null for both lists.
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"attributes":[],"assessments":[]}` {
		t.Errorf("unexpected serialization: %s", raw)
	}
}

func TestBuildNoDefinitionsStillListsAssessments(t *testing.T) {
	src := newFixture()

	resp := buildOrFail(t, src, []int64{100, 200})
	if len(resp.Attributes) != 0 {
		t.Errorf("expected no rows, got %d", len(resp.Attributes))
	}
	if len(resp.Assessments) != 2 {
		t.Errorf("expected 2 assessments, got %d", len(resp.Assessments))
	}
}

func TestBuildPreservesResolvedOrder(t *testing.T) {
	src := newFixture()
	src.defs = []*attribute.Definition{
		textDef(1, 100, "T"), textDef(2, 200, "T"), textDef(3, 300, "T"),
	}

	// Title descending: C, B, A.
	resp := buildOrFail(t, src, []int64{200, 100, 300})

	var titles []string
	for _, s := range resp.Assessments {
		titles = append(titles, s.Title)
	}
	want := []string{"C assessment", "B assessment", "A assessment"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("assessments out of order: %v", titles)
	}
	if len(resp.Assessments) != 3 {
		t.Errorf("one summary per resolved id, got %d", len(resp.Assessments))
	}
}

func TestBuildIdempotent(t *testing.T) {
	def := dropdownDef("1,3,2", "1,1")
	def.DefinitionID = 100
	def.ID = 1

	src := newFixture()
	src.defs = []*attribute.Definition{def, textDef(2, 200, "Owner sign-off")}
	src.values = []*attribute.Value{
		{ID: 1, CustomAttributeID: 1, AttributableID: 100, AttributeValue: "1"},
	}

	first := buildOrFail(t, src, []int64{100, 200})
	second := buildOrFail(t, src, []int64{100, 200})

	rawFirst, _ := json.Marshal(first)
	rawSecond, _ := json.Marshal(second)
	if string(rawFirst) != string(rawSecond) {
		t.Errorf("responses differ across identical requests:\n%s\n%s", rawFirst, rawSecond)
	}
}

func keysOf(m map[string]*Cell) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
