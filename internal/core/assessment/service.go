package assessment

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("assessment not found")
	ErrInvalidStatus = errors.New("invalid assessment status")
	ErrInvalidKind   = errors.New("invalid evidence kind")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *CreateAssessmentRequest) (*Assessment, error) {
	status := req.Status
	if status == "" {
		status = StatusNotStarted
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	asmt := &Assessment{
		Title:          req.Title,
		Status:         status,
		AssessmentType: req.AssessmentType,
	}

	if err := s.repo.Create(ctx, asmt); err != nil {
		return nil, err
	}
	return asmt, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Assessment, error) {
	asmt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asmt == nil {
		return nil, ErrNotFound
	}
	return asmt, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) (*ListAssessmentsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	assessments, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if assessments == nil {
		assessments = []*Assessment{}
	}

	return &ListAssessmentsResponse{
		Assessments: assessments,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*Assessment, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) AddEvidence(ctx context.Context, assessmentID int64, req *AddEvidenceRequest) (*Evidence, error) {
	if req.Kind != EvidenceURL && req.Kind != EvidenceFILE {
		return nil, ErrInvalidKind
	}

	if _, err := s.Get(ctx, assessmentID); err != nil {
		return nil, err
	}

	ev := &Evidence{
		AssessmentID: assessmentID,
		Kind:         req.Kind,
		Title:        req.Title,
		Link:         req.Link,
	}

	if err := s.repo.AddEvidence(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Service) AddComment(ctx context.Context, assessmentID int64, req *AddCommentRequest) (*Comment, error) {
	if _, err := s.Get(ctx, assessmentID); err != nil {
		return nil, err
	}

	cm := &Comment{
		AssessmentID: assessmentID,
		Description:  req.Description,
	}

	if err := s.repo.AddComment(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

// SummariesByIDs returns one summary per known id, in the order the ids were
// given. Ids without a stored assessment are skipped.
func (s *Service) SummariesByIDs(ctx context.Context, ids []int64) ([]*Summary, error) {
	if len(ids) == 0 {
		return []*Summary{}, nil
	}

	byID, err := s.repo.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return OrderSummaries(ids, byID), nil
}

func (s *Service) ArtifactFlagsByIDs(ctx context.Context, ids []int64) (map[int64]ArtifactFlags, error) {
	if len(ids) == 0 {
		return map[int64]ArtifactFlags{}, nil
	}
	return s.repo.ArtifactFlagsByIDs(ctx, ids)
}

// OrderSummaries arranges bulk-loaded summaries into the resolved id order.
// SQL row order is not relied on.
func OrderSummaries(ids []int64, byID map[int64]*Summary) []*Summary {
	ordered := make([]*Summary, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

func validStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
