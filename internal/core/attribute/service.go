package attribute

import (
	"context"
	"errors"

	"github.com/auditgrid/auditgrid/internal/core/assessment"
	"github.com/auditgrid/auditgrid/internal/core/person"
)

var (
	ErrDefinitionNotFound = errors.New("attribute definition not found")
	ErrInvalidType        = errors.New("invalid attribute type")
	ErrOptionsRequired    = errors.New("multi_choice_options required for this attribute type")
	ErrDefinitionMismatch = errors.New("definition does not belong to this assessment")
	ErrPersonNotFound     = errors.New("referenced person not found")
	ErrObjectIDNotAllowed = errors.New("attribute_object_id is only valid for Map:Person attributes")
)

type Service struct {
	repo        *Repository
	assessments *assessment.Service
	people      *person.Service
}

func NewService(repo *Repository, assessments *assessment.Service, people *person.Service) *Service {
	return &Service{repo: repo, assessments: assessments, people: people}
}

// CreateDefinition attaches a new local custom attribute to an assessment.
// Dropdown and Multiselect definitions must declare their options here;
// nothing is validated again at matrix time.
func (s *Service) CreateDefinition(ctx context.Context, assessmentID int64, req *CreateDefinitionRequest) (*Definition, error) {
	if !validType(req.AttributeType) {
		return nil, ErrInvalidType
	}

	multiChoice := req.AttributeType == TypeDropdown || req.AttributeType == TypeMultiselect
	if multiChoice && (req.MultiChoiceOptions == nil || *req.MultiChoiceOptions == "") {
		return nil, ErrOptionsRequired
	}

	if _, err := s.assessments.Get(ctx, assessmentID); err != nil {
		return nil, err
	}

	def := &Definition{
		DefinitionType: "Assessment",
		DefinitionID:   assessmentID,
		Title:          req.Title,
		AttributeType:  req.AttributeType,
		Mandatory:      req.Mandatory,
		DefaultValue:   typedDefault(req),
	}
	if multiChoice {
		def.MultiChoiceOptions = req.MultiChoiceOptions
		def.MultiChoiceMandatory = req.MultiChoiceMandatory
	}

	if err := s.repo.CreateDefinition(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

// SetValue records or replaces the answer for one (definition, assessment)
// pair. Map:Person answers store the fixed type label plus the person id;
// everything else stores the scalar as given.
func (s *Service) SetValue(ctx context.Context, assessmentID, definitionID int64, req *SetValueRequest) (*Value, error) {
	def, err := s.repo.GetDefinition(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, ErrDefinitionNotFound
	}
	if def.DefinitionID != assessmentID {
		return nil, ErrDefinitionMismatch
	}

	if def.AttributeType != TypeMapPerson && req.AttributeObjectID != nil {
		return nil, ErrObjectIDNotAllowed
	}

	if err := validateValue(def, req); err != nil {
		return nil, err
	}

	val := &Value{
		CustomAttributeID: def.ID,
		AttributableID:    assessmentID,
		AttributeValue:    req.AttributeValue,
		AttributeObjectID: req.AttributeObjectID,
	}

	if def.AttributeType == TypeMapPerson {
		exists, err := s.people.Exists(ctx, *req.AttributeObjectID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrPersonNotFound
		}
		val.AttributeValue = person.TypeLabel
	}

	if err := s.repo.UpsertValue(ctx, val); err != nil {
		return nil, err
	}
	return val, nil
}

func (s *Service) DefinitionsForAssessments(ctx context.Context, ids []int64) ([]*Definition, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.repo.DefinitionsForAssessments(ctx, ids)
}

func (s *Service) ValuesForDefinitions(ctx context.Context, defIDs []int64) ([]*Value, error) {
	if len(defIDs) == 0 {
		return nil, nil
	}
	return s.repo.ValuesForDefinitions(ctx, defIDs)
}

func typedDefault(req *CreateDefinitionRequest) *string {
	if req.DefaultValue != nil {
		return req.DefaultValue
	}
	if req.AttributeType == TypeCheckbox {
		zero := "0"
		return &zero
	}
	return nil
}

func validType(attributeType string) bool {
	for _, t := range ValidTypes {
		if t == attributeType {
			return true
		}
	}
	return false
}
