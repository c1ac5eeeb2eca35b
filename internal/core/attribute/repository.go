package attribute

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

func (r *Repository) CreateDefinition(ctx context.Context, def *Definition) error {
	query := `
		INSERT INTO custom_attribute_definitions
			(definition_type, definition_id, title, attribute_type, mandatory,
			 default_value, multi_choice_options, multi_choice_mandatory)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return r.db.DB.QueryRowContext(ctx, query,
		def.DefinitionType, def.DefinitionID, def.Title, def.AttributeType,
		def.Mandatory, def.DefaultValue, def.MultiChoiceOptions, def.MultiChoiceMandatory,
	).Scan(&def.ID, &def.CreatedAt)
}

func (r *Repository) GetDefinition(ctx context.Context, id int64) (*Definition, error) {
	query := `
		SELECT id, definition_type, definition_id, title, attribute_type,
		       mandatory, default_value, multi_choice_options, multi_choice_mandatory,
		       created_at
		FROM custom_attribute_definitions
		WHERE id = $1`

	def, err := scanDefinition(r.db.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return def, nil
}

// DefinitionsForAssessments bulk-loads every definition attached to the given
// assessments. Ordered by definition id so the first-seen row order of the
// matrix is deterministic.
func (r *Repository) DefinitionsForAssessments(ctx context.Context, ids []int64) ([]*Definition, error) {
	query := `
		SELECT id, definition_type, definition_id, title, attribute_type,
		       mandatory, default_value, multi_choice_options, multi_choice_mandatory,
		       created_at
		FROM custom_attribute_definitions
		WHERE definition_type = 'Assessment' AND definition_id = ANY($1)
		ORDER BY id`

	rows, err := r.db.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []*Definition
	for rows.Next() {
		def := &Definition{}
		if err := rows.Scan(
			&def.ID, &def.DefinitionType, &def.DefinitionID, &def.Title,
			&def.AttributeType, &def.Mandatory, &def.DefaultValue,
			&def.MultiChoiceOptions, &def.MultiChoiceMandatory, &def.CreatedAt,
		); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// UpsertValue writes the single value for a (definition, assessment) pair,
// replacing any previous answer.
func (r *Repository) UpsertValue(ctx context.Context, val *Value) error {
	query := `
		INSERT INTO custom_attribute_values
			(custom_attribute_id, attributable_id, attribute_value, attribute_object_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (custom_attribute_id, attributable_id)
		DO UPDATE SET attribute_value = EXCLUDED.attribute_value,
		              attribute_object_id = EXCLUDED.attribute_object_id,
		              updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at`

	return r.db.DB.QueryRowContext(ctx, query,
		val.CustomAttributeID, val.AttributableID, val.AttributeValue, val.AttributeObjectID,
	).Scan(&val.ID, &val.CreatedAt, &val.UpdatedAt)
}

// ValuesForDefinitions bulk-loads recorded values for the given definitions.
func (r *Repository) ValuesForDefinitions(ctx context.Context, defIDs []int64) ([]*Value, error) {
	query := `
		SELECT id, custom_attribute_id, attributable_id, attribute_value,
		       attribute_object_id, created_at, updated_at
		FROM custom_attribute_values
		WHERE custom_attribute_id = ANY($1)
		ORDER BY id`

	rows, err := r.db.DB.QueryContext(ctx, query, pq.Array(defIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []*Value
	for rows.Next() {
		val := &Value{}
		if err := rows.Scan(
			&val.ID, &val.CustomAttributeID, &val.AttributableID,
			&val.AttributeValue, &val.AttributeObjectID,
			&val.CreatedAt, &val.UpdatedAt,
		); err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, rows.Err()
}

func scanDefinition(row *sql.Row) (*Definition, error) {
	def := &Definition{}
	err := row.Scan(
		&def.ID, &def.DefinitionType, &def.DefinitionID, &def.Title,
		&def.AttributeType, &def.Mandatory, &def.DefaultValue,
		&def.MultiChoiceOptions, &def.MultiChoiceMandatory, &def.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return def, nil
}
