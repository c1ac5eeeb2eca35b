package assessment

import (
	"time"
)

// Workflow statuses an assessment moves through.
const (
	StatusNotStarted   = "Not Started"
	StatusInProgress   = "In Progress"
	StatusInReview     = "In Review"
	StatusCompleted    = "Completed"
	StatusVerified     = "Verified"
	StatusDeprecated   = "Deprecated"
	StatusReworkNeeded = "Rework Needed"
)

// Evidence kinds.
const (
	EvidenceURL  = "URL"
	EvidenceFILE = "FILE"
)

var ValidStatuses = []string{
	StatusNotStarted, StatusInProgress, StatusInReview,
	StatusCompleted, StatusVerified, StatusDeprecated, StatusReworkNeeded,
}

type Assessment struct {
	ID             int64     `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	AssessmentType string    `json:"assessment_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Evidence struct {
	ID           int64     `json:"id"`
	AssessmentID int64     `json:"assessment_id"`
	Kind         string    `json:"kind"`
	Title        string    `json:"title,omitempty"`
	Link         string    `json:"link,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Comment struct {
	ID           int64     `json:"id"`
	AssessmentID int64     `json:"assessment_id"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary is the lightweight per-assessment view returned alongside the
// attribute matrix.
type Summary struct {
	AssessmentType string `json:"assessment_type"`
	ID             int64  `json:"id"`
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Status         string `json:"status"`
	URLsCount      int    `json:"urls_count"`
	FilesCount     int    `json:"files_count"`
}

// ArtifactFlags records which completion artifacts exist on an assessment.
type ArtifactFlags struct {
	HasComment  bool
	HasEvidence bool
	HasURL      bool
}

type CreateAssessmentRequest struct {
	Title          string `json:"title" binding:"required"`
	AssessmentType string `json:"assessment_type" binding:"required"`
	Status         string `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddEvidenceRequest struct {
	Kind  string `json:"kind" binding:"required"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

type AddCommentRequest struct {
	Description string `json:"description" binding:"required"`
}

type ListAssessmentsResponse struct {
	Assessments []*Assessment `json:"assessments"`
	Total       int           `json:"total"`
	Limit       int           `json:"limit"`
	Offset      int           `json:"offset"`
}
