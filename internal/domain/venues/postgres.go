package venues

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"diljourney/internal/domain/moods"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const venueColumns = `
	id, name, description, moods, mood_scores, category, address, city,
	longitude, latitude, images, lighting, noise_level, seating, outdoor_area, decor,
	activity_guide, seeking_guide, price_range, cuisine, opening_hours,
	average_rating, total_reviews, is_active, created_at, updated_at`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) Store {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, venue *Venue) error {
	query := `
	  INSERT INTO venues (
	    id, name, description, moods, mood_scores, category, address, city,
	    longitude, latitude, images, lighting, noise_level, seating, outdoor_area, decor,
	    activity_guide, seeking_guide, price_range, cuisine, opening_hours, is_active
	  )
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	  RETURNING created_at, updated_at
	`

	venue.ApplyDefaults()
	scores, err := json.Marshal(venue.MoodScores)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	id := uuid.New()
	venue.Name = strings.TrimSpace(venue.Name)
	if venue.Moods == nil {
		venue.Moods = []string{}
	}

	err = r.db.QueryRow(ctx, query,
		id, venue.Name, venue.Description, venue.Moods, scores, venue.Category, venue.Address, venue.City,
		venue.Location.Coordinates[0], venue.Location.Coordinates[1], venue.Images,
		venue.Ambiance.Lighting, venue.Ambiance.NoiseLevel, venue.Ambiance.Seating, venue.Ambiance.OutdoorArea, venue.Ambiance.Decor,
		venue.ActivityGuide, venue.SeekingGuide, venue.PriceRange, venue.Cuisine, venue.OpeningHours, venue.IsActive,
	).Scan(&venue.CreatedAt, &venue.UpdatedAt)
	if err != nil {
		return err
	}

	venue.ID = id.String()
	venue.AverageRating = 0
	venue.TotalReviews = 0
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	vid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrVenueNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	v, err := scanVenue(r.db.QueryRow(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = $1`, vid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]Venue, error) {
	if len(ids) == 0 {
		return []Venue{}, nil
	}
	found, err := r.query(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE id::text = ANY($1::text[]) AND is_active`, ids)
	if err != nil {
		return nil, err
	}
	return orderByIDs(found, ids), nil
}

// whereClause builds the listing predicate; args are numbered from 1.
func (f Filter) whereClause() (string, []any) {
	conds := []string{"is_active"}
	args := []any{}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Mood != "" {
		add("$%d = ANY(moods)", f.Mood)
	}
	if f.City != "" {
		add("city ILIKE $%d", "%"+escapeLike(f.City)+"%")
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.PriceRange != "" {
		add("price_range = $%d", f.PriceRange)
	}
	return strings.Join(conds, " AND "), args
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]Venue, int, error) {
	where, args := filter.whereClause()

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM venues WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM venues WHERE %s
		ORDER BY average_rating DESC, created_at ASC
		LIMIT $%d OFFSET $%d`, venueColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	vs, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return vs, total, nil
}

func (r *PostgresRepository) ByMood(ctx context.Context, mood, city string, limit int) ([]Venue, error) {
	score := `COALESCE((mood_scores->>$1)::float8, 0)`
	query := `SELECT ` + venueColumns + ` FROM venues
		WHERE is_active AND $1 = ANY(moods) AND ` + score + ` >= $2`
	args := []any{mood, moods.Threshold}

	if city != "" {
		args = append(args, "%"+escapeLike(city)+"%")
		query += fmt.Sprintf(" AND city ILIKE $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY %s DESC, average_rating DESC LIMIT $%d", score, len(args))

	return r.query(ctx, query, args...)
}

func (r *PostgresRepository) Cities(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT DISTINCT city FROM venues WHERE is_active ORDER BY city`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *PostgresRepository) SetRating(ctx context.Context, id string, average float64, total int) error {
	return r.exec(ctx, `UPDATE venues SET average_rating = $2, total_reviews = $3, updated_at = NOW() WHERE id = $1`,
		id, average, total)
}

func (r *PostgresRepository) AddImage(ctx context.Context, id, url string) error {
	return r.exec(ctx, `UPDATE venues SET images = array_append(images, $2), updated_at = NOW() WHERE id = $1`, id, url)
}

func (r *PostgresRepository) RemoveImage(ctx context.Context, id, url string) error {
	return r.exec(ctx, `UPDATE venues SET images = array_remove(images, $2), updated_at = NOW() WHERE id = $1`, id, url)
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM venues`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) exec(ctx context.Context, query, id string, args ...any) error {
	vid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return ErrVenueNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, append([]any{vid}, args...)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVenueNotFound
	}
	return nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func scanVenue(row pgx.Row) (*Venue, error) {
	var (
		v        Venue
		id       uuid.UUID
		scores   []byte
		lng, lat float64
	)
	err := row.Scan(
		&id, &v.Name, &v.Description, &v.Moods, &scores, &v.Category, &v.Address, &v.City,
		&lng, &lat, &v.Images,
		&v.Ambiance.Lighting, &v.Ambiance.NoiseLevel, &v.Ambiance.Seating, &v.Ambiance.OutdoorArea, &v.Ambiance.Decor,
		&v.ActivityGuide, &v.SeekingGuide, &v.PriceRange, &v.Cuisine, &v.OpeningHours,
		&v.AverageRating, &v.TotalReviews, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.ID = id.String()
	v.Location = Point{Type: "Point", Coordinates: []float64{lng, lat}}
	v.MoodScores = map[string]float64{}
	if len(scores) > 0 {
		if err := json.Unmarshal(scores, &v.MoodScores); err != nil {
			return nil, err
		}
	}
	return &v, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
