package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/darthcode66/Snap-Self/internal/models"
)

// DashboardRepository computes aggregate counts for a photographer.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a dashboard repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts returns how many schools, classes, students and sessions the photographer owns.
func (r *DashboardRepository) Counts(ctx context.Context, photographerID string) (*models.DashboardCounts, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM schools s WHERE s.photographer_id = $1) AS schools,
        (SELECT COUNT(*) FROM classes c JOIN schools s ON s.id = c.school_id WHERE s.photographer_id = $1) AS classes,
        (SELECT COUNT(*) FROM students st JOIN classes c ON c.id = st.class_id JOIN schools s ON s.id = c.school_id WHERE s.photographer_id = $1) AS students,
        (SELECT COUNT(*) FROM photo_sessions ps WHERE ps.photographer_id = $1) AS sessions`
	var counts models.DashboardCounts
	if err := r.db.GetContext(ctx, &counts, query, photographerID); err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &counts, nil
}
