package person

import (
	"time"
)

// TypeLabel is the object-type label projected into matrix cells for
// Map:Person attribute values.
const TypeLabel = "Person"

type Person struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePersonRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}
