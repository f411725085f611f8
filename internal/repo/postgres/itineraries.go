package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/traveltrack/traveltrack/internal/domain/itinerary"
)

const itineraryColumns = `id, trip_id, title, description, days, total_cost, total_duration,
	is_public, tags, version, created_at, updated_at`

type ItinerariesRepo struct {
	pool *pgxpool.Pool
}

func NewItinerariesRepo(pool *pgxpool.Pool) *ItinerariesRepo {
	return &ItinerariesRepo{pool: pool}
}

func scanItinerary(row pgx.Row) (itinerary.Itinerary, error) {
	var it itinerary.Itinerary

	err := row.Scan(
		&it.ID,
		&it.TripID,
		&it.Title,
		&it.Description,
		&it.Days,
		&it.TotalCost,
		&it.TotalDuration,
		&it.IsPublic,
		&it.Tags,
		&it.Version,
		&it.CreatedAt,
		&it.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return itinerary.Itinerary{}, itinerary.ErrNotFound
		}

		return itinerary.Itinerary{}, err
	}

	return it, nil
}

func (r *ItinerariesRepo) Create(ctx context.Context, it itinerary.Itinerary) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO itineraries(id, trip_id, title, description, days, total_cost, total_duration,
			is_public, tags, version, created_at, updated_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		it.ID, it.TripID, it.Title, it.Description, it.Days, it.TotalCost, it.TotalDuration,
		it.IsPublic, it.Tags, it.Version, it.CreatedAt, it.UpdatedAt,
	)

	return err
}

func (r *ItinerariesRepo) GetByID(ctx context.Context, id string) (itinerary.Itinerary, error) {
	return scanItinerary(r.pool.QueryRow(ctx,
		`SELECT `+itineraryColumns+` FROM itineraries WHERE id = $1`, id))
}

func (r *ItinerariesRepo) ListByTrip(ctx context.Context, tripID string) ([]itinerary.Itinerary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itineraryColumns+` FROM itineraries WHERE trip_id = $1 ORDER BY created_at DESC, id ASC`, tripID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := []itinerary.Itinerary{}

	for rows.Next() {
		var it itinerary.Itinerary

		err = rows.Scan(
			&it.ID, &it.TripID, &it.Title, &it.Description, &it.Days, &it.TotalCost,
			&it.TotalDuration, &it.IsPublic, &it.Tags, &it.Version, &it.CreatedAt, &it.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		output = append(output, it)
	}

	return output, rows.Err()
}

func (r *ItinerariesRepo) Save(ctx context.Context, it itinerary.Itinerary) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE itineraries
			SET title = $2,
				description = $3,
				days = $4,
				total_cost = $5,
				total_duration = $6,
				is_public = $7,
				tags = $8,
				version = $9,
				updated_at = NOW()
		WHERE id = $1`,
		it.ID, it.Title, it.Description, it.Days, it.TotalCost, it.TotalDuration,
		it.IsPublic, it.Tags, it.Version,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return itinerary.ErrNotFound
	}

	return nil
}

func (r *ItinerariesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM itineraries WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return itinerary.ErrNotFound
	}

	return nil
}

func (r *ItinerariesRepo) DeleteByTrip(ctx context.Context, tripID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM itineraries WHERE trip_id = $1`, tripID)
	return err
}
