package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/traveltrack/traveltrack/internal/domain/user"
)

const userColumns = `id, email, password_hash, first_name, last_name, avatar, role, preferences,
	is_email_verified, verification_code_hash, verification_code_expiry,
	reset_code_hash, reset_code_expiry, reset_code_verified,
	is_active, last_login, created_at, updated_at`

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Avatar,
		&u.Role,
		&u.Preferences,
		&u.IsEmailVerified,
		&u.VerificationCodeHash,
		&u.VerificationCodeExpiry,
		&u.ResetCodeHash,
		&u.ResetCodeExpiry,
		&u.ResetCodeVerified,
		&u.IsActive,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, email, password_hash, first_name, last_name, avatar, role, preferences,
			is_email_verified, verification_code_hash, verification_code_expiry,
			reset_code_hash, reset_code_expiry, reset_code_verified,
			is_active, last_login, created_at, updated_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Avatar, u.Role, u.Preferences,
		u.IsEmailVerified, u.VerificationCodeHash, u.VerificationCodeExpiry,
		u.ResetCodeHash, u.ResetCodeExpiry, u.ResetCodeVerified,
		u.IsActive, u.LastLogin, u.CreatedAt, u.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		// unique_violation on the email index
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailTaken
		}

		return err
	}

	return nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// Save writes the whole mutable surface of the user back. Callers mutate the
// domain value first, then persist.
func (r *UsersRepo) Save(ctx context.Context, u user.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
			SET email = $2,
				password_hash = $3,
				first_name = $4,
				last_name = $5,
				avatar = $6,
				role = $7,
				preferences = $8,
				is_email_verified = $9,
				verification_code_hash = $10,
				verification_code_expiry = $11,
				reset_code_hash = $12,
				reset_code_expiry = $13,
				reset_code_verified = $14,
				is_active = $15,
				last_login = $16,
				updated_at = NOW()
		WHERE id = $1`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Avatar, u.Role, u.Preferences,
		u.IsEmailVerified, u.VerificationCodeHash, u.VerificationCodeExpiry,
		u.ResetCodeHash, u.ResetCodeExpiry, u.ResetCodeVerified,
		u.IsActive, u.LastLogin,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailTaken
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}

	return nil
}

type ListUsersFilter struct {
	Role   string
	Search string
	Limit  int
	Offset int
}

func (r *UsersRepo) List(ctx context.Context, filter ListUsersFilter) ([]user.User, int, error) {
	baseQuery := `SELECT ` + userColumns + `, COUNT(*) OVER() AS total FROM users`

	var conds []string
	var args []interface{}

	argsPosition := 1

	if filter.Role != "" {
		conds = append(conds, fmt.Sprintf("role = $%d", argsPosition))
		args = append(args, filter.Role)
		argsPosition++
	}

	if filter.Search != "" {
		conds = append(conds, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argsPosition, argsPosition, argsPosition))
		args = append(args, "%"+filter.Search+"%")
		argsPosition++
	}

	query := baseQuery

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// stable ordering for pagination
	query += fmt.Sprintf(" ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d", argsPosition, argsPosition+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	output := make([]user.User, 0, filter.Limit)
	total := 0

	for rows.Next() {
		var u user.User
		var t int

		err = rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Avatar, &u.Role, &u.Preferences,
			&u.IsEmailVerified, &u.VerificationCodeHash, &u.VerificationCodeExpiry,
			&u.ResetCodeHash, &u.ResetCodeExpiry, &u.ResetCodeVerified,
			&u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt, &t,
		)

		if err != nil {
			return nil, 0, err
		}

		total = t
		output = append(output, u)
	}

	err = rows.Err()

	if err != nil {
		return nil, 0, err
	}

	return output, total, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}

	return nil
}
