package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auditgrid/auditgrid/internal/core/matrix"
	"github.com/auditgrid/auditgrid/internal/core/query"
)

// IDResolver resolves a declarative clause into an ordered assessment id
// list.
type IDResolver interface {
	ResolveIDs(ctx context.Context, clause *query.Clause) ([]int64, error)
}

// MatrixBuilder assembles the attribute matrix for an ordered id list.
type MatrixBuilder interface {
	Build(ctx context.Context, ids []int64) (*matrix.Response, error)
}

type MatrixHandler struct {
	resolver IDResolver
	builder  MatrixBuilder
}

func NewMatrixHandler(resolver IDResolver, builder MatrixBuilder) *MatrixHandler {
	return &MatrixHandler{resolver: resolver, builder: builder}
}

// Search handles POST /api/bulk_operations/cavs/search. The body is a list
// of query clauses; the first Assessment ids clause drives the matrix.
func (h *MatrixHandler) Search(c *gin.Context) {
	var clauses []query.Clause
	if err := c.ShouldBindJSON(&clauses); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clause := assessmentClause(clauses)
	if clause == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no Assessment ids clause in request"})
		return
	}

	ids, err := h.resolver.ResolveIDs(c.Request.Context(), clause)
	if err != nil {
		if errors.Is(err, query.ErrBadExpression) ||
			errors.Is(err, query.ErrBadField) ||
			errors.Is(err, query.ErrBadOrderField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.builder.Build(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func assessmentClause(clauses []query.Clause) *query.Clause {
	for i := range clauses {
		if clauses[i].ObjectName == "Assessment" && clauses[i].Type == "ids" {
			return &clauses[i]
		}
	}
	return nil
}
