package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, password, avatar, bio, city, favorite_moods, age, gender, preferences, created_at, updated_at`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) Store {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) error {
	query := `
	  INSERT INTO users (id, name, email, password, avatar, bio, city, favorite_moods, age, gender, preferences)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	  RETURNING created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	id := uuid.New()
	user.Name = strings.TrimSpace(user.Name)
	user.Email = NormalizeEmail(user.Email)
	user.FavoriteMoods = nonNil(user.FavoriteMoods)
	user.Preferences = nonNil(user.Preferences)

	err := r.db.QueryRow(ctx, query,
		id, user.Name, user.Email, user.Password.hash, user.Avatar, user.Bio, user.City,
		user.FavoriteMoods, user.Age, user.Gender, user.Preferences,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}

	user.ID = id.String()
	user.SavedVenues = []string{}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, NormalizeEmail(email))
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if user.SavedVenues, err = r.savedVenueIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id::text = ANY($1::text[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		u.SavedVenues = []string{}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error) {
	uid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrNotFound
	}

	updates := map[string]any{}
	if update.Name != nil {
		updates["name"] = strings.TrimSpace(*update.Name)
	}
	if update.Bio != nil {
		updates["bio"] = *update.Bio
	}
	if update.City != nil {
		updates["city"] = *update.City
	}
	if update.Avatar != nil {
		updates["avatar"] = *update.Avatar
	}
	if update.FavoriteMoods != nil {
		updates["favorite_moods"] = update.FavoriteMoods
	}

	setClauses := []string{}
	args := []any{}
	argCounter := 1
	for field, value := range updates {
		if !isValidField(field) {
			return nil, fmt.Errorf("invalid field name: %s", field)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field, argCounter))
		args = append(args, value)
		argCounter++
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, uid)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argCounter)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Helper function to validate field names
func isValidField(field string) bool {
	validFields := map[string]bool{
		"name":           true,
		"bio":            true,
		"city":           true,
		"avatar":         true,
		"favorite_moods": true,
	}
	return validFields[field]
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, user *User) error {
	uid, err := uuid.Parse(user.ID)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, user.Password.hash, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) AddSavedVenue(ctx context.Context, userID, venueID string) ([]string, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	vid, err := uuid.Parse(venueID)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		INSERT INTO saved_venues (user_id, venue_id) VALUES ($1, $2)
		ON CONFLICT (user_id, venue_id) DO NOTHING
	`, uid, vid)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrAlreadySaved
	}
	return r.savedVenueIDs(ctx, userID)
}

func (r *PostgresRepository) RemoveSavedVenue(ctx context.Context, userID, venueID string) ([]string, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if vid, err := uuid.Parse(venueID); err == nil {
		if _, err := r.db.Exec(ctx, `DELETE FROM saved_venues WHERE user_id = $1 AND venue_id = $2`, uid, vid); err != nil {
			return nil, err
		}
	}
	return r.savedVenueIDs(ctx, userID)
}

func (r *PostgresRepository) savedVenueIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT venue_id::text FROM saved_venues
		WHERE user_id::text = $1
		ORDER BY created_at, venue_id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		user User
		id   uuid.UUID
	)
	err := row.Scan(
		&id,
		&user.Name,
		&user.Email,
		&user.Password.hash,
		&user.Avatar,
		&user.Bio,
		&user.City,
		&user.FavoriteMoods,
		&user.Age,
		&user.Gender,
		&user.Preferences,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.ID = id.String()
	user.FavoriteMoods = nonNil(user.FavoriteMoods)
	user.Preferences = nonNil(user.Preferences)
	return &user, nil
}
