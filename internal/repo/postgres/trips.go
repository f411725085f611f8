package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/traveltrack/traveltrack/internal/domain/trip"
)

const tripColumns = `id, title, description, owner_id, destination_id, start_date, end_date,
	duration, status, type, budget, cover_image, is_public, collaborators, tags, notes, meta,
	created_at, updated_at`

type TripsRepo struct {
	pool *pgxpool.Pool
}

func NewTripsRepo(pool *pgxpool.Pool) *TripsRepo {
	return &TripsRepo{pool: pool}
}

func scanTrip(row pgx.Row) (trip.Trip, error) {
	var t trip.Trip

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.OwnerID,
		&t.DestinationID,
		&t.StartDate,
		&t.EndDate,
		&t.Duration,
		&t.Status,
		&t.Type,
		&t.Budget,
		&t.CoverImage,
		&t.IsPublic,
		&t.Collaborators,
		&t.Tags,
		&t.Notes,
		&t.Meta,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip.Trip{}, trip.ErrNotFound
		}

		return trip.Trip{}, err
	}

	return t, nil
}

func (r *TripsRepo) Create(ctx context.Context, t trip.Trip) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO trips(id, title, description, owner_id, destination_id, start_date, end_date,
			duration, status, type, budget, cover_image, is_public, collaborators, tags, notes, meta,
			created_at, updated_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		t.ID, t.Title, t.Description, t.OwnerID, t.DestinationID, t.StartDate, t.EndDate,
		t.Duration, t.Status, t.Type, t.Budget, t.CoverImage, t.IsPublic, t.Collaborators,
		t.Tags, t.Notes, t.Meta, t.CreatedAt, t.UpdatedAt,
	)

	return err
}

func (r *TripsRepo) GetByID(ctx context.Context, id string) (trip.Trip, error) {
	return scanTrip(r.pool.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = $1`, id))
}

// Save writes the full document. Duration and budget.spent are recomputed by
// the domain layer before this is called.
func (r *TripsRepo) Save(ctx context.Context, t trip.Trip) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE trips
			SET title = $2,
				description = $3,
				destination_id = $4,
				start_date = $5,
				end_date = $6,
				duration = $7,
				status = $8,
				type = $9,
				budget = $10,
				cover_image = $11,
				is_public = $12,
				collaborators = $13,
				tags = $14,
				notes = $15,
				meta = $16,
				updated_at = NOW()
		WHERE id = $1`,
		t.ID, t.Title, t.Description, t.DestinationID, t.StartDate, t.EndDate,
		t.Duration, t.Status, t.Type, t.Budget, t.CoverImage, t.IsPublic,
		t.Collaborators, t.Tags, t.Notes, t.Meta,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return trip.ErrNotFound
	}

	return nil
}

func (r *TripsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return trip.ErrNotFound
	}

	return nil
}

var tripSortColumns = map[string]string{
	"createdAt": "created_at",
	"startDate": "start_date",
	"endDate":   "end_date",
	"title":     "title",
}

// List returns trips the user owns or collaborates on, newest first unless a
// sort is requested.
func (r *TripsRepo) List(ctx context.Context, filter trip.ListTripsFilter) ([]trip.Trip, int, error) {
	baseQuery := `SELECT ` + tripColumns + `, COUNT(*) OVER() AS total FROM trips`

	conds := []string{
		`(owner_id = $1 OR collaborators @> jsonb_build_array(jsonb_build_object('userId', $1::text)))`,
	}
	args := []interface{}{filter.OwnerID}

	argsPosition := 2

	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argsPosition))
		args = append(args, *filter.Status)
		argsPosition++
	}

	if filter.Type != nil {
		conds = append(conds, fmt.Sprintf("type = $%d", argsPosition))
		args = append(args, *filter.Type)
		argsPosition++
	}

	if filter.Search != nil {
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argsPosition, argsPosition))
		args = append(args, "%"+*filter.Search+"%")
		argsPosition++
	}

	query := baseQuery + " WHERE " + strings.Join(conds, " AND ")

	sortCol, ok := tripSortColumns[filter.Sort]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		order = "ASC"
	}

	// id tiebreak keeps pagination stable
	query += fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d", sortCol, order, argsPosition, argsPosition+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	output := make([]trip.Trip, 0, filter.Limit)
	total := 0

	for rows.Next() {
		var t trip.Trip
		var count int

		err = rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.OwnerID, &t.DestinationID, &t.StartDate, &t.EndDate,
			&t.Duration, &t.Status, &t.Type, &t.Budget, &t.CoverImage, &t.IsPublic,
			&t.Collaborators, &t.Tags, &t.Notes, &t.Meta, &t.CreatedAt, &t.UpdatedAt, &count,
		)

		if err != nil {
			return nil, 0, err
		}

		total = count
		output = append(output, t)
	}

	err = rows.Err()

	if err != nil {
		return nil, 0, err
	}

	return output, total, nil
}

// CountByStatus powers the trip stats endpoint.
func (r *TripsRepo) CountByStatus(ctx context.Context, ownerID string) (map[trip.Status]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*)
		FROM trips
		WHERE owner_id = $1 OR collaborators @> jsonb_build_array(jsonb_build_object('userId', $1::text))
		GROUP BY status`,
		ownerID,
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make(map[trip.Status]int)

	for rows.Next() {
		var status trip.Status
		var n int

		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}

		out[status] = n
	}

	return out, rows.Err()
}

// StatsByOwner aggregates the dashboard rollup in one scan; per-user trip
// counts are small enough that grouping in Go beats three queries.
func (r *TripsRepo) StatsByOwner(ctx context.Context, ownerID string) (trip.OwnerStats, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, type, budget
		FROM trips
		WHERE owner_id = $1 OR collaborators @> jsonb_build_array(jsonb_build_object('userId', $1::text))`,
		ownerID,
	)

	if err != nil {
		return trip.OwnerStats{}, err
	}

	defer rows.Close()

	stats := trip.OwnerStats{
		ByStatus: make(map[trip.Status]int),
		ByType:   make(map[trip.Type]int),
	}

	for rows.Next() {
		var status trip.Status
		var kind trip.Type
		var budget trip.Money

		if err := rows.Scan(&status, &kind, &budget); err != nil {
			return trip.OwnerStats{}, err
		}

		stats.Total++
		stats.ByStatus[status]++
		stats.ByType[kind]++
		stats.TotalBudget += budget.Total
		stats.TotalSpent += budget.Spent
	}

	return stats, rows.Err()
}
