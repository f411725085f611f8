package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/traveltrack/traveltrack/internal/domain/packinglist"
)

const packingListColumns = `id, trip_id, title, description, items, categories, total_weight,
	total_estimated_cost, is_template, template_category, is_public, tags, created_at, updated_at`

type PackingListsRepo struct {
	pool *pgxpool.Pool
}

func NewPackingListsRepo(pool *pgxpool.Pool) *PackingListsRepo {
	return &PackingListsRepo{pool: pool}
}

func scanPackingList(row pgx.Row) (packinglist.PackingList, error) {
	var p packinglist.PackingList

	err := row.Scan(
		&p.ID,
		&p.TripID,
		&p.Title,
		&p.Description,
		&p.Items,
		&p.Categories,
		&p.TotalWeight,
		&p.TotalEstimatedCost,
		&p.IsTemplate,
		&p.TemplateCategory,
		&p.IsPublic,
		&p.Tags,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return packinglist.PackingList{}, packinglist.ErrNotFound
		}

		return packinglist.PackingList{}, err
	}

	return p, nil
}

func (r *PackingListsRepo) Create(ctx context.Context, p packinglist.PackingList) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO packing_lists(id, trip_id, title, description, items, categories, total_weight,
			total_estimated_cost, is_template, template_category, is_public, tags, created_at, updated_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		p.ID, p.TripID, p.Title, p.Description, p.Items, p.Categories, p.TotalWeight,
		p.TotalEstimatedCost, p.IsTemplate, p.TemplateCategory, p.IsPublic, p.Tags,
		p.CreatedAt, p.UpdatedAt,
	)

	return err
}

func (r *PackingListsRepo) GetByID(ctx context.Context, id string) (packinglist.PackingList, error) {
	return scanPackingList(r.pool.QueryRow(ctx,
		`SELECT `+packingListColumns+` FROM packing_lists WHERE id = $1`, id))
}

func (r *PackingListsRepo) ListByTrip(ctx context.Context, tripID string) ([]packinglist.PackingList, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+packingListColumns+` FROM packing_lists WHERE trip_id = $1 ORDER BY created_at DESC, id ASC`, tripID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := []packinglist.PackingList{}

	for rows.Next() {
		var p packinglist.PackingList

		err = rows.Scan(
			&p.ID, &p.TripID, &p.Title, &p.Description, &p.Items, &p.Categories, &p.TotalWeight,
			&p.TotalEstimatedCost, &p.IsTemplate, &p.TemplateCategory, &p.IsPublic, &p.Tags,
			&p.CreatedAt, &p.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		output = append(output, p)
	}

	return output, rows.Err()
}

func (r *PackingListsRepo) Save(ctx context.Context, p packinglist.PackingList) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE packing_lists
			SET title = $2,
				description = $3,
				items = $4,
				categories = $5,
				total_weight = $6,
				total_estimated_cost = $7,
				is_template = $8,
				template_category = $9,
				is_public = $10,
				tags = $11,
				updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Title, p.Description, p.Items, p.Categories, p.TotalWeight,
		p.TotalEstimatedCost, p.IsTemplate, p.TemplateCategory, p.IsPublic, p.Tags,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return packinglist.ErrNotFound
	}

	return nil
}

func (r *PackingListsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM packing_lists WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return packinglist.ErrNotFound
	}

	return nil
}

func (r *PackingListsRepo) DeleteByTrip(ctx context.Context, tripID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM packing_lists WHERE trip_id = $1`, tripID)
	return err
}
