package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type ApartmentLikeRepository struct {
	DB *sql.DB
}

// InsertLike adds the user to the apartment's like set. The table has a
// unique key on (apartment_id, user_id), so a duplicate insert fails rather
// than double-counting.
func (r *ApartmentLikeRepository) InsertLike(ctx context.Context, apartmentID, userID string) error {
	query := `INSERT INTO apartment_likes (apartment_id, user_id, created_at) VALUES (?, ?, NOW())`
	if _, err := r.DB.ExecContext(ctx, query, apartmentID, userID); err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (r *ApartmentLikeRepository) DeleteLike(ctx context.Context, apartmentID, userID string) error {
	query := `DELETE FROM apartment_likes WHERE apartment_id = ? AND user_id = ?`
	if _, err := r.DB.ExecContext(ctx, query, apartmentID, userID); err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}

func (r *ApartmentLikeRepository) IsLiked(ctx context.Context, apartmentID, userID string) (bool, error) {
	query := `SELECT COUNT(*) FROM apartment_likes WHERE apartment_id = ? AND user_id = ?`
	var count int
	err := r.DB.QueryRowContext(ctx, query, apartmentID, userID).Scan(&count)
	return count > 0, err
}
