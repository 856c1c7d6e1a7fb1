package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reviewColumns = `id, user_id, venue_id, mood, rating, mood_match, title, body, visit_date, created_at, updated_at`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) Store {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, review *Review) error {
	query := `
        INSERT INTO reviews (id, user_id, venue_id, mood, rating, mood_match, title, body, visit_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at
    `

	userID, err := uuid.Parse(review.UserID)
	if err != nil {
		return ErrNotFound
	}
	venueID, err := uuid.Parse(review.VenueID)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	review.prepare(time.Now().UTC())
	id := uuid.New()
	err = r.db.QueryRow(ctx, query,
		id, userID, venueID, review.Mood, review.Rating, review.MoodMatch,
		review.Title, review.Body, review.VisitDate,
	).Scan(&review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateReview
			case "23503":
				return ErrNotFound
			}
		}
		return err
	}

	review.ID = id.String()
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	rid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rev, err := scanReview(r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, rid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rev, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, update Update) (*Review, error) {
	rid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrNotFound
	}

	sets := []string{"updated_at = NOW()"}
	args := []any{rid}
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Rating != nil {
		set("rating", *update.Rating)
	}
	if update.MoodMatch != nil {
		set("mood_match", *update.MoodMatch)
	}
	if update.Title != nil {
		set("title", strings.TrimSpace(*update.Title))
	}
	if update.Body != nil {
		set("body", *update.Body)
	}

	query := fmt.Sprintf(`UPDATE reviews SET %s WHERE id = $1 RETURNING %s`, strings.Join(sets, ", "), reviewColumns)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rev, err := scanReview(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rev, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	rid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, rid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HasReview returns true if a review by this user on this venue already exists.
func (r *PostgresRepository) HasReview(ctx context.Context, userID, venueID string) (bool, error) {
	query := `
        SELECT EXISTS (
          SELECT 1 FROM reviews
          WHERE user_id::text = $1 AND venue_id::text = $2
        )
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, query, userID, venueID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) ListByVenue(ctx context.Context, venueID string, filter ListFilter) ([]Review, int, error) {
	where := `venue_id::text = $1`
	args := []any{venueID}
	if filter.Mood != "" {
		args = append(args, filter.Mood)
		where += ` AND mood = $2`
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		reviewColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	out, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE user_id::text = $1 ORDER BY created_at DESC, id DESC`, userID)
}

func (r *PostgresRepository) RatingStats(ctx context.Context, venueID string) (total int, average float64, err error) {
	query := `
        SELECT
            COUNT(id) AS total_reviews,
            COALESCE(AVG(rating), 0)::float8 AS average_rating
        FROM reviews
        WHERE venue_id::text = $1
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err = r.db.QueryRow(ctx, query, venueID).Scan(&total, &average)
	return total, average, err
}

func (r *PostgresRepository) MoodSummary(ctx context.Context, venueID string) ([]MoodSummary, error) {
	query := `
        SELECT mood, COUNT(*), AVG(rating)::float8, COUNT(*) FILTER (WHERE mood_match)
        FROM reviews
        WHERE venue_id::text = $1
        GROUP BY mood
        ORDER BY COUNT(*) DESC, mood ASC
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MoodSummary{}
	for rows.Next() {
		var s MoodSummary
		if err := rows.Scan(&s.Mood, &s.Count, &s.AvgRating, &s.MoodMatchCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rev)
	}
	return out, rows.Err()
}

func scanReview(row pgx.Row) (*Review, error) {
	var (
		rev                Review
		id, userID, venueID uuid.UUID
	)
	err := row.Scan(
		&id, &userID, &venueID, &rev.Mood, &rev.Rating, &rev.MoodMatch,
		&rev.Title, &rev.Body, &rev.VisitDate, &rev.CreatedAt, &rev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rev.ID = id.String()
	rev.UserID = userID.String()
	rev.VenueID = venueID.String()
	return &rev, nil
}
