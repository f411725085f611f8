package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/traveltrack/traveltrack/internal/domain/budget"
)

const budgetColumns = `id, trip_id, title, description, items, total_budget, total_income,
	total_expenses, categories, is_active, start_date, end_date, alerts, created_at, updated_at`

type BudgetsRepo struct {
	pool *pgxpool.Pool
}

func NewBudgetsRepo(pool *pgxpool.Pool) *BudgetsRepo {
	return &BudgetsRepo{pool: pool}
}

func scanBudget(row pgx.Row) (budget.Budget, error) {
	var b budget.Budget

	err := row.Scan(
		&b.ID,
		&b.TripID,
		&b.Title,
		&b.Description,
		&b.Items,
		&b.TotalBudget,
		&b.TotalIncome,
		&b.TotalExpenses,
		&b.Categories,
		&b.IsActive,
		&b.StartDate,
		&b.EndDate,
		&b.Alerts,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return budget.Budget{}, budget.ErrNotFound
		}

		return budget.Budget{}, err
	}

	return b, nil
}

func (r *BudgetsRepo) Create(ctx context.Context, b budget.Budget) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO budgets(id, trip_id, title, description, items, total_budget, total_income,
			total_expenses, categories, is_active, start_date, end_date, alerts, created_at, updated_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		b.ID, b.TripID, b.Title, b.Description, b.Items, b.TotalBudget, b.TotalIncome,
		b.TotalExpenses, b.Categories, b.IsActive, b.StartDate, b.EndDate, b.Alerts,
		b.CreatedAt, b.UpdatedAt,
	)

	return err
}

func (r *BudgetsRepo) GetByID(ctx context.Context, id string) (budget.Budget, error) {
	return scanBudget(r.pool.QueryRow(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id))
}

func (r *BudgetsRepo) ListByTrip(ctx context.Context, tripID string) ([]budget.Budget, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE trip_id = $1 ORDER BY created_at DESC, id ASC`, tripID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := []budget.Budget{}

	for rows.Next() {
		var b budget.Budget

		err = rows.Scan(
			&b.ID, &b.TripID, &b.Title, &b.Description, &b.Items, &b.TotalBudget, &b.TotalIncome,
			&b.TotalExpenses, &b.Categories, &b.IsActive, &b.StartDate, &b.EndDate, &b.Alerts,
			&b.CreatedAt, &b.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		output = append(output, b)
	}

	return output, rows.Err()
}

// Save persists the document after the domain layer has recalculated totals.
func (r *BudgetsRepo) Save(ctx context.Context, b budget.Budget) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE budgets
			SET title = $2,
				description = $3,
				items = $4,
				total_budget = $5,
				total_income = $6,
				total_expenses = $7,
				categories = $8,
				is_active = $9,
				start_date = $10,
				end_date = $11,
				alerts = $12,
				updated_at = NOW()
		WHERE id = $1`,
		b.ID, b.Title, b.Description, b.Items, b.TotalBudget, b.TotalIncome, b.TotalExpenses,
		b.Categories, b.IsActive, b.StartDate, b.EndDate, b.Alerts,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return budget.ErrNotFound
	}

	return nil
}

func (r *BudgetsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return budget.ErrNotFound
	}

	return nil
}

// DeleteByTrip removes every budget of a trip when the trip itself goes away.
func (r *BudgetsRepo) DeleteByTrip(ctx context.Context, tripID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE trip_id = $1`, tripID)
	return err
}
