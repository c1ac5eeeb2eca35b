package assessment

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/auditgrid/auditgrid/internal/storage/postgres"
)

type Repository struct {
	db *postgres.Client
}

func NewRepository(db *postgres.Client) *Repository {
	return &Repository{db: db}
}

// Create inserts the assessment and derives its slug from the generated id
// within one transaction.
func (r *Repository) Create(ctx context.Context, asmt *Assessment) error {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO assessments (title, status, assessment_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	if err := tx.QueryRowContext(ctx, query,
		asmt.Title, asmt.Status, asmt.AssessmentType,
	).Scan(&asmt.ID, &asmt.CreatedAt, &asmt.UpdatedAt); err != nil {
		return err
	}

	slugQuery := `
		UPDATE assessments
		SET slug = 'ASSESSMENT-' || id
		WHERE id = $1
		RETURNING slug`

	if err := tx.QueryRowContext(ctx, slugQuery, asmt.ID).Scan(&asmt.Slug); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Assessment, error) {
	query := `
		SELECT id, slug, title, status, assessment_type, created_at, updated_at
		FROM assessments
		WHERE id = $1`

	asmt := &Assessment{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&asmt.ID, &asmt.Slug, &asmt.Title, &asmt.Status,
		&asmt.AssessmentType, &asmt.CreatedAt, &asmt.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return asmt, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Assessment, int, error) {
	countQuery := `SELECT COUNT(*) FROM assessments`
	var total int
	if err := r.db.DB.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, slug, title, status, assessment_type, created_at, updated_at
		FROM assessments
		ORDER BY id
		LIMIT $1 OFFSET $2`

	rows, err := r.db.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var assessments []*Assessment
	for rows.Next() {
		asmt := &Assessment{}
		if err := rows.Scan(
			&asmt.ID, &asmt.Slug, &asmt.Title, &asmt.Status,
			&asmt.AssessmentType, &asmt.CreatedAt, &asmt.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		assessments = append(assessments, asmt)
	}
	return assessments, total, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `
		UPDATE assessments
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	_, err := r.db.DB.ExecContext(ctx, query, id, status)
	return err
}

func (r *Repository) AddEvidence(ctx context.Context, ev *Evidence) error {
	query := `
		INSERT INTO evidences (assessment_id, kind, title, link)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.DB.QueryRowContext(ctx, query,
		ev.AssessmentID, ev.Kind, ev.Title, ev.Link,
	).Scan(&ev.ID, &ev.CreatedAt)
}

func (r *Repository) AddComment(ctx context.Context, cm *Comment) error {
	query := `
		INSERT INTO comments (assessment_id, description)
		VALUES ($1, $2)
		RETURNING id, created_at`

	return r.db.DB.QueryRowContext(ctx, query,
		cm.AssessmentID, cm.Description,
	).Scan(&cm.ID, &cm.CreatedAt)
}

// SummariesByIDs bulk-loads summary rows with evidence counts for the given
// assessments. Results are keyed by id; callers impose ordering.
func (r *Repository) SummariesByIDs(ctx context.Context, ids []int64) (map[int64]*Summary, error) {
	query := `
		SELECT a.id, a.slug, a.title, a.status, a.assessment_type,
		       COUNT(e.id) FILTER (WHERE e.kind = 'URL')  AS urls_count,
		       COUNT(e.id) FILTER (WHERE e.kind = 'FILE') AS files_count
		FROM assessments a
		LEFT JOIN evidences e ON e.assessment_id = a.id
		WHERE a.id = ANY($1)
		GROUP BY a.id, a.slug, a.title, a.status, a.assessment_type`

	rows, err := r.db.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make(map[int64]*Summary)
	for rows.Next() {
		s := &Summary{}
		if err := rows.Scan(
			&s.ID, &s.Slug, &s.Title, &s.Status, &s.AssessmentType,
			&s.URLsCount, &s.FilesCount,
		); err != nil {
			return nil, err
		}
		summaries[s.ID] = s
	}
	return summaries, rows.Err()
}

// ArtifactFlagsByIDs bulk-loads existence flags for comments and evidences,
// one row per assessment.
func (r *Repository) ArtifactFlagsByIDs(ctx context.Context, ids []int64) (map[int64]ArtifactFlags, error) {
	query := `
		SELECT a.id,
		       EXISTS (SELECT 1 FROM comments c WHERE c.assessment_id = a.id),
		       EXISTS (SELECT 1 FROM evidences e WHERE e.assessment_id = a.id),
		       EXISTS (SELECT 1 FROM evidences e WHERE e.assessment_id = a.id AND e.kind = 'URL')
		FROM assessments a
		WHERE a.id = ANY($1)`

	rows, err := r.db.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flags := make(map[int64]ArtifactFlags)
	for rows.Next() {
		var id int64
		var f ArtifactFlags
		if err := rows.Scan(&id, &f.HasComment, &f.HasEvidence, &f.HasURL); err != nil {
			return nil, err
		}
		flags[id] = f
	}
	return flags, rows.Err()
}
