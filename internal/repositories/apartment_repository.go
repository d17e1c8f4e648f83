package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"diraBack/internal/models"
)

type ApartmentRepository struct {
	DB *sql.DB
}

const apartmentColumns = `
	a.id, a.user_id, u.name, u.avatar_url, a.images, a.video, a.size, a.rooms,
	a.cost, a.arnona, a.city, a.street, a.neighborhood, a.floor,
	a.pets_allowed, a.smoking_allowed, a.has_parking, a.has_balcony, a.has_elevator,
	a.bomb_shelter, a.furniture, a.rental_type, a.phone_number, a.entry_date,
	a.open_house_date, a.open_house_time, a.status, a.close_reason,
	a.created_at, a.updated_at`

func (r *ApartmentRepository) GetAllApartments(ctx context.Context) ([]models.Apartment, error) {
	query := `
		SELECT` + apartmentColumns + `
		FROM apartments a
		JOIN users u ON a.user_id = u.id
		ORDER BY a.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query apartments: %w", err)
	}
	defer rows.Close()

	var apartments []models.Apartment
	for rows.Next() {
		a, err := scanApartment(rows)
		if err != nil {
			return nil, err
		}
		apartments = append(apartments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("apartments rows error: %w", err)
	}

	if err := r.attachLikes(ctx, apartments); err != nil {
		return nil, err
	}
	if err := r.attachRegistrations(ctx, apartments); err != nil {
		return nil, err
	}
	return apartments, nil
}

func (r *ApartmentRepository) GetApartmentByID(ctx context.Context, id string) (models.Apartment, error) {
	query := `
		SELECT` + apartmentColumns + `
		FROM apartments a
		JOIN users u ON a.user_id = u.id
		WHERE a.id = ?
	`
	row := r.DB.QueryRowContext(ctx, query, id)
	a, err := scanApartment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Apartment{}, models.ErrApartmentNotFound
	}
	if err != nil {
		return models.Apartment{}, err
	}

	apartments := []models.Apartment{a}
	if err := r.attachLikes(ctx, apartments); err != nil {
		return models.Apartment{}, err
	}
	if err := r.attachRegistrations(ctx, apartments); err != nil {
		return models.Apartment{}, err
	}
	return apartments[0], nil
}

func (r *ApartmentRepository) CreateApartment(ctx context.Context, a models.Apartment) (models.Apartment, error) {
	images, err := json.Marshal(a.Images)
	if err != nil {
		return models.Apartment{}, err
	}
	furniture, err := json.Marshal(a.Furniture)
	if err != nil {
		return models.Apartment{}, err
	}

	var openHouseDate, openHouseTime sql.NullString
	if a.OpenHouse != nil {
		openHouseDate = sql.NullString{String: a.OpenHouse.Date, Valid: true}
		openHouseTime = sql.NullString{String: a.OpenHouse.Time, Valid: true}
	}

	query := `
		INSERT INTO apartments
			(id, user_id, images, video, size, rooms, cost, arnona,
			 city, street, neighborhood, floor,
			 pets_allowed, smoking_allowed, has_parking, has_balcony, has_elevator,
			 bomb_shelter, furniture, rental_type, phone_number, entry_date,
			 open_house_date, open_house_time, status, close_reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	_, err = r.DB.ExecContext(ctx, query,
		a.ID, a.UserID, string(images), a.Video, a.Size, a.Rooms, a.Cost, a.Arnona,
		a.Address.City, a.Address.Street, a.Address.Neighborhood, a.Address.Floor,
		a.PetsAllowed, a.SmokingAllowed, a.HasParking, a.HasBalcony, a.HasElevator,
		string(a.BombShelter), string(furniture), string(a.RentalType), a.PhoneNumber, a.EntryDate,
		openHouseDate, openHouseTime, string(a.Status), a.CloseReason,
	)
	if err != nil {
		return models.Apartment{}, fmt.Errorf("insert apartment: %w", err)
	}
	return r.GetApartmentByID(ctx, a.ID)
}

func (r *ApartmentRepository) UpdateApartment(ctx context.Context, a models.Apartment) (models.Apartment, error) {
	images, err := json.Marshal(a.Images)
	if err != nil {
		return models.Apartment{}, err
	}
	furniture, err := json.Marshal(a.Furniture)
	if err != nil {
		return models.Apartment{}, err
	}

	var openHouseDate, openHouseTime sql.NullString
	if a.OpenHouse != nil {
		openHouseDate = sql.NullString{String: a.OpenHouse.Date, Valid: true}
		openHouseTime = sql.NullString{String: a.OpenHouse.Time, Valid: true}
	}

	query := `
		UPDATE apartments
		SET images = ?, video = ?, size = ?, rooms = ?, cost = ?, arnona = ?,
		    city = ?, street = ?, neighborhood = ?, floor = ?,
		    pets_allowed = ?, smoking_allowed = ?, has_parking = ?, has_balcony = ?, has_elevator = ?,
		    bomb_shelter = ?, furniture = ?, rental_type = ?, phone_number = ?, entry_date = ?,
		    open_house_date = ?, open_house_time = ?, updated_at = NOW()
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query,
		string(images), a.Video, a.Size, a.Rooms, a.Cost, a.Arnona,
		a.Address.City, a.Address.Street, a.Address.Neighborhood, a.Address.Floor,
		a.PetsAllowed, a.SmokingAllowed, a.HasParking, a.HasBalcony, a.HasElevator,
		string(a.BombShelter), string(furniture), string(a.RentalType), a.PhoneNumber, a.EntryDate,
		openHouseDate, openHouseTime, a.ID,
	)
	if err != nil {
		return models.Apartment{}, fmt.Errorf("update apartment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.Apartment{}, err
	}
	if affected == 0 {
		return models.Apartment{}, models.ErrApartmentNotFound
	}
	return r.GetApartmentByID(ctx, a.ID)
}

func (r *ApartmentRepository) CloseApartment(ctx context.Context, id, reason string) error {
	query := `UPDATE apartments SET status = 'closed', close_reason = ?, updated_at = NOW() WHERE id = ?`
	result, err := r.DB.ExecContext(ctx, query, reason, id)
	if err != nil {
		return fmt.Errorf("close apartment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrApartmentNotFound
	}
	return nil
}

// DeleteApartment removes the listing permanently, recording the mandatory
// reason before the row goes away.
func (r *ApartmentRepository) DeleteApartment(ctx context.Context, id, reason string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO apartment_deletions (apartment_id, reason, deleted_at) VALUES (?, ?, NOW())`,
		id, reason,
	)
	if err != nil {
		return fmt.Errorf("record deletion reason: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM apartments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete apartment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrApartmentNotFound
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApartment(row rowScanner) (models.Apartment, error) {
	var (
		a             models.Apartment
		avatar        sql.NullString
		imagesJSON    sql.NullString
		video         sql.NullString
		furnitureJSON sql.NullString
		bombShelter   sql.NullString
		rentalType    sql.NullString
		entryDate     sql.NullTime
		openHouseDate sql.NullString
		openHouseTime sql.NullString
		status        sql.NullString
		closeReason   sql.NullString
		updatedAt     sql.NullTime
	)

	err := row.Scan(
		&a.ID, &a.UserID, &a.Username, &avatar, &imagesJSON, &video, &a.Size, &a.Rooms,
		&a.Cost, &a.Arnona, &a.Address.City, &a.Address.Street, &a.Address.Neighborhood, &a.Address.Floor,
		&a.PetsAllowed, &a.SmokingAllowed, &a.HasParking, &a.HasBalcony, &a.HasElevator,
		&bombShelter, &furnitureJSON, &rentalType, &a.PhoneNumber, &entryDate,
		&openHouseDate, &openHouseTime, &status, &closeReason,
		&a.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.Apartment{}, err
	}

	if avatar.Valid {
		a.UserAvatar = avatar.String
	}
	if video.Valid {
		a.Video = &video.String
	}
	if imagesJSON.Valid && imagesJSON.String != "" {
		if err := json.Unmarshal([]byte(imagesJSON.String), &a.Images); err != nil {
			log.Printf("failed to decode images for apartment %s: %v", a.ID, err)
		}
	}
	if furnitureJSON.Valid && furnitureJSON.String != "" {
		if err := json.Unmarshal([]byte(furnitureJSON.String), &a.Furniture); err != nil {
			log.Printf("failed to decode furniture for apartment %s: %v", a.ID, err)
		}
	}
	a.BombShelter = models.BombShelter(bombShelter.String)
	a.RentalType = models.RentalType(rentalType.String)
	a.Status = models.ApartmentStatus(status.String)
	a.CloseReason = closeReason.String
	if entryDate.Valid {
		d := entryDate.Time
		a.EntryDate = &d
	}
	if openHouseDate.Valid && openHouseDate.String != "" {
		a.OpenHouse = &models.OpenHouse{Date: openHouseDate.String, Time: openHouseTime.String}
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		a.UpdatedAt = &t
	}

	// Ingestion boundary: downstream code assumes normalized records.
	return a.Normalize(), nil
}

func (r *ApartmentRepository) attachLikes(ctx context.Context, apartments []models.Apartment) error {
	likes, err := r.collectUserIDs(ctx, `SELECT apartment_id, user_id FROM apartment_likes ORDER BY created_at`)
	if err != nil {
		return fmt.Errorf("query likes: %w", err)
	}
	for i := range apartments {
		if ids, ok := likes[apartments[i].ID]; ok {
			apartments[i].Likes = ids
		}
	}
	return nil
}

func (r *ApartmentRepository) attachRegistrations(ctx context.Context, apartments []models.Apartment) error {
	regs, err := r.collectUserIDs(ctx, `SELECT apartment_id, user_id FROM open_house_registrations ORDER BY created_at`)
	if err != nil {
		return fmt.Errorf("query open house registrations: %w", err)
	}
	for i := range apartments {
		if apartments[i].OpenHouse == nil {
			continue
		}
		if ids, ok := regs[apartments[i].ID]; ok {
			apartments[i].OpenHouse.Registrants = ids
		}
	}
	return nil
}

func (r *ApartmentRepository) collectUserIDs(ctx context.Context, query string) (map[string][]string, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byApartment := make(map[string][]string)
	for rows.Next() {
		var apartmentID, userID string
		if err := rows.Scan(&apartmentID, &userID); err != nil {
			return nil, err
		}
		byApartment[apartmentID] = append(byApartment[apartmentID], userID)
	}
	return byApartment, rows.Err()
}
