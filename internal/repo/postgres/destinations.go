package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/traveltrack/traveltrack/internal/domain/destination"
)

const destinationColumns = `id, name, country, city, description, coordinates, images, categories,
	best_visit_from, best_visit_to, cost_estimate, rating, reviews, average_review, tags,
	visit_count, is_active, created_by, created_at, updated_at`

type DestinationsRepo struct {
	pool *pgxpool.Pool
}

func NewDestinationsRepo(pool *pgxpool.Pool) *DestinationsRepo {
	return &DestinationsRepo{pool: pool}
}

func scanDestination(row pgx.Row) (destination.Destination, error) {
	var d destination.Destination

	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Country,
		&d.City,
		&d.Description,
		&d.Coordinates,
		&d.Images,
		&d.Categories,
		&d.BestVisitFrom,
		&d.BestVisitTo,
		&d.CostEstimate,
		&d.Rating,
		&d.Reviews,
		&d.AverageReview,
		&d.Tags,
		&d.VisitCount,
		&d.IsActive,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return destination.Destination{}, destination.ErrNotFound
		}

		return destination.Destination{}, err
	}

	return d, nil
}

func (r *DestinationsRepo) Create(ctx context.Context, d destination.Destination) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO destinations(id, name, country, city, description, coordinates, images, categories,
			best_visit_from, best_visit_to, cost_estimate, rating, reviews, average_review, tags,
			visit_count, is_active, created_by, created_at, updated_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
		d.ID, d.Name, d.Country, d.City, d.Description, d.Coordinates, d.Images, d.Categories,
		d.BestVisitFrom, d.BestVisitTo, d.CostEstimate, d.Rating, d.Reviews, d.AverageReview,
		d.Tags, d.VisitCount, d.IsActive, d.CreatedBy, d.CreatedAt, d.UpdatedAt,
	)

	return err
}

func (r *DestinationsRepo) GetByID(ctx context.Context, id string) (destination.Destination, error) {
	return scanDestination(r.pool.QueryRow(ctx,
		`SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id))
}

func (r *DestinationsRepo) Save(ctx context.Context, d destination.Destination) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE destinations
			SET name = $2,
				country = $3,
				city = $4,
				description = $5,
				coordinates = $6,
				images = $7,
				categories = $8,
				best_visit_from = $9,
				best_visit_to = $10,
				cost_estimate = $11,
				rating = $12,
				reviews = $13,
				average_review = $14,
				tags = $15,
				is_active = $16,
				updated_at = NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Country, d.City, d.Description, d.Coordinates, d.Images, d.Categories,
		d.BestVisitFrom, d.BestVisitTo, d.CostEstimate, d.Rating, d.Reviews, d.AverageReview,
		d.Tags, d.IsActive,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return destination.ErrNotFound
	}

	return nil
}

// IncrementVisitCount bumps the counter atomically, independent of the
// Save round-trip, so concurrent reads never lose visits.
func (r *DestinationsRepo) IncrementVisitCount(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE destinations SET visit_count = visit_count + 1 WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return destination.ErrNotFound
	}

	return nil
}

func (r *DestinationsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM destinations WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return destination.ErrNotFound
	}

	return nil
}

// Sort values are mapped through a fixed table; anything else falls back to
// the rating order so user input never reaches the ORDER BY clause.
var destinationSortOrders = map[string]string{
	"rating":    "(rating->>'average')::float DESC",
	"popular":   "visit_count DESC, (rating->>'average')::float DESC",
	"name":      "name ASC",
	"createdAt": "created_at DESC",
}

func (r *DestinationsRepo) List(ctx context.Context, filter destination.ListFilter) ([]destination.Destination, int, error) {
	baseQuery := `SELECT ` + destinationColumns + `, COUNT(*) OVER() AS total FROM destinations`

	conds := []string{"is_active = TRUE"}
	var args []interface{}

	argsPosition := 1

	if filter.Country != "" {
		conds = append(conds, fmt.Sprintf("country ILIKE $%d", argsPosition))
		args = append(args, filter.Country)
		argsPosition++
	}

	if filter.City != "" {
		conds = append(conds, fmt.Sprintf("city ILIKE $%d", argsPosition))
		args = append(args, filter.City)
		argsPosition++
	}

	if filter.Category != "" {
		conds = append(conds, fmt.Sprintf("categories @> to_jsonb(ARRAY[$%d::text])", argsPosition))
		args = append(args, filter.Category)
		argsPosition++
	}

	if filter.Search != "" {
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR country ILIKE $%d OR city ILIKE $%d)", argsPosition, argsPosition, argsPosition))
		args = append(args, "%"+filter.Search+"%")
		argsPosition++
	}

	if filter.MinRating > 0 {
		conds = append(conds, fmt.Sprintf("(rating->>'average')::float >= $%d", argsPosition))
		args = append(args, filter.MinRating)
		argsPosition++
	}

	if filter.MaxBudget > 0 {
		conds = append(conds, fmt.Sprintf("(cost_estimate->>'budget')::float <= $%d", argsPosition))
		args = append(args, filter.MaxBudget)
		argsPosition++
	}

	query := baseQuery + " WHERE " + strings.Join(conds, " AND ")

	orderBy, ok := destinationSortOrders[filter.Sort]
	if !ok {
		orderBy = destinationSortOrders["rating"]
	}

	query += fmt.Sprintf(" ORDER BY %s, id ASC LIMIT $%d OFFSET $%d", orderBy, argsPosition, argsPosition+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	output := make([]destination.Destination, 0, filter.Limit)
	total := 0

	for rows.Next() {
		var d destination.Destination
		var count int

		err = rows.Scan(
			&d.ID, &d.Name, &d.Country, &d.City, &d.Description, &d.Coordinates, &d.Images,
			&d.Categories, &d.BestVisitFrom, &d.BestVisitTo, &d.CostEstimate, &d.Rating,
			&d.Reviews, &d.AverageReview, &d.Tags, &d.VisitCount, &d.IsActive, &d.CreatedBy,
			&d.CreatedAt, &d.UpdatedAt, &count,
		)

		if err != nil {
			return nil, 0, err
		}

		total = count
		output = append(output, d)
	}

	err = rows.Err()

	if err != nil {
		return nil, 0, err
	}

	return output, total, nil
}
