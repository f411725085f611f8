package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/domain/user"
	"github.com/traveltrack/traveltrack/internal/security"
)

func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	u := user.User{
		ID:              uuid.NewString(),
		Email:           cfg.AdminEmail,
		PasswordHash:    hash,
		FirstName:       cfg.AdminName,
		LastName:        "Admin",
		Role:            "admin",
		Preferences:     user.DefaultPreferences(),
		IsEmailVerified: true,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, avatar, role, preferences,
			is_email_verified, verification_code_hash, verification_code_expiry,
			reset_code_hash, reset_code_expiry, reset_code_verified,
			is_active, last_login, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Avatar, u.Role, u.Preferences,
		u.IsEmailVerified, u.VerificationCodeHash, u.VerificationCodeExpiry,
		u.ResetCodeHash, u.ResetCodeExpiry, u.ResetCodeVerified,
		u.IsActive, u.LastLogin, u.CreatedAt, u.UpdatedAt,
	)

	return err
}
