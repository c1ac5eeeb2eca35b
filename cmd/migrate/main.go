package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/auditgrid/auditgrid/config"
	"github.com/auditgrid/auditgrid/internal/core/auth"
	"github.com/auditgrid/auditgrid/internal/storage/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	name TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'active',
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS people (
	id BIGSERIAL PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS assessments (
	id BIGSERIAL PRIMARY KEY,
	slug TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Not Started',
	assessment_type TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS evidences (
	id BIGSERIAL PRIMARY KEY,
	assessment_id BIGINT NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
	kind TEXT NOT NULL CHECK (kind IN ('URL', 'FILE')),
	title TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_evidences_assessment ON evidences (assessment_id, kind);

CREATE TABLE IF NOT EXISTS comments (
	id BIGSERIAL PRIMARY KEY,
	assessment_id BIGINT NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
	description TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_comments_assessment ON comments (assessment_id);

CREATE TABLE IF NOT EXISTS custom_attribute_definitions (
	id BIGSERIAL PRIMARY KEY,
	definition_type TEXT NOT NULL DEFAULT 'Assessment',
	definition_id BIGINT NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	attribute_type TEXT NOT NULL,
	mandatory BOOLEAN NOT NULL DEFAULT FALSE,
	default_value TEXT,
	multi_choice_options TEXT,
	multi_choice_mandatory TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_cad_definition ON custom_attribute_definitions (definition_type, definition_id);

CREATE TABLE IF NOT EXISTS custom_attribute_values (
	id BIGSERIAL PRIMARY KEY,
	custom_attribute_id BIGINT NOT NULL REFERENCES custom_attribute_definitions(id) ON DELETE CASCADE,
	attributable_id BIGINT NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
	attribute_value TEXT NOT NULL,
	attribute_object_id BIGINT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (custom_attribute_id, attributable_id)
);
`

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.DB.Exec(schema); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	fmt.Println("Schema applied")

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return
	}

	ctx := context.Background()
	authRepo := auth.NewRepository(db)

	existing, err := authRepo.GetUserByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("Failed to check for existing user: %v", err)
	}
	if existing != nil {
		fmt.Printf("Admin user '%s' already exists\n", adminEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &auth.User{
		ID:           uuid.New(),
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         "Admin",
		Status:       "active",
		IsAdmin:      true,
	}

	if err := authRepo.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Successfully created admin user: %s\n", adminEmail)
}
