package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type OpenHouseRepository struct {
	DB *sql.DB
}

func (r *OpenHouseRepository) InsertRegistration(ctx context.Context, apartmentID, userID string) error {
	query := `INSERT INTO open_house_registrations (apartment_id, user_id, created_at) VALUES (?, ?, NOW())`
	if _, err := r.DB.ExecContext(ctx, query, apartmentID, userID); err != nil {
		return fmt.Errorf("insert open house registration: %w", err)
	}
	return nil
}

func (r *OpenHouseRepository) DeleteRegistration(ctx context.Context, apartmentID, userID string) error {
	query := `DELETE FROM open_house_registrations WHERE apartment_id = ? AND user_id = ?`
	if _, err := r.DB.ExecContext(ctx, query, apartmentID, userID); err != nil {
		return fmt.Errorf("delete open house registration: %w", err)
	}
	return nil
}
