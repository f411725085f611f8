package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/traveltrack/traveltrack/internal/auth"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/domain/user"
	"github.com/traveltrack/traveltrack/internal/http/middlewares"
	"github.com/traveltrack/traveltrack/internal/jobs"
	"github.com/traveltrack/traveltrack/internal/security"
)

type UsersStore interface {
	Create(ctx context.Context, u user.User) error
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, u user.User) error
}

type JobEnqueuer interface {
	Enqueue(ctx context.Context, j jobs.Job) error
}

type AuthHandler struct {
	users UsersStore
	jwt   *auth.Manager
	queue JobEnqueuer
	cfg   config.Config
}

func NewAuthHandler(users UsersStore, jwtManager *auth.Manager, queue JobEnqueuer, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   jwtManager,
		queue: queue,
		cfg:   cfg,
	}
}

func (h *AuthHandler) enqueueJob(ctx context.Context, t jobs.JobType, payload any) error {
	b, err := jobs.EncodePayload(t, payload)

	if err != nil {
		return err
	}

	j, err := jobs.NewJob(t, b, time.Time{})

	if err != nil {
		return err
	}

	return h.queue.Enqueue(ctx, j)
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	code, err := auth.NewEmailCode()

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	now := time.Now().UTC()
	codeExpiry := now.Add(h.cfg.CodeTTL)

	u := user.User{
		ID:                     uuid.NewString(),
		Email:                  req.Email,
		PasswordHash:           hash,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Role:                   "user",
		Preferences:            user.DefaultPreferences(),
		VerificationCodeHash:   h.jwt.HashCode(code),
		VerificationCodeExpiry: &codeExpiry,
		IsActive:               true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := h.users.Create(cctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "Email is already in use")
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	message := "Registration successful, verification code sent to your email"

	// email failure downgrades to a warning; the registration stands
	err = h.enqueueJob(cctx, jobs.JobSendVerificationEmail, jobs.SendVerificationEmailPayload{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		Code:      code,
		RequestID: requestIDFrom(ctx),
	})
	if err != nil {
		message = "Registration successful but the verification email could not be sent"
	}

	RespondData(ctx, http.StatusCreated, message, gin.H{
		"token": accessToken,
		"user":  u,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		RespondUnauthorized(ctx, "Email or password is incorrect")
		return
	}

	if err := security.CheckPassword(found.PasswordHash, req.Password); err != nil {
		RespondUnauthorized(ctx, "Email or password is incorrect")
		return
	}

	if !found.IsActive {
		RespondUnauthorized(ctx, "Account is deactivated")
		return
	}

	now := time.Now().UTC()
	found.LastLogin = &now

	// best effort; login still succeeds if the timestamp write fails
	_ = h.users.Save(cctx, found)

	accessToken, err := h.jwt.GenerateAccessToken(found.ID, found.Email, found.Role)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	RespondData(ctx, http.StatusOK, "Login successful", gin.H{
		"token": accessToken,
		"user":  found,
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not load user")
		return
	}

	RespondData(ctx, http.StatusOK, "", u)
}

func (h *AuthHandler) VerifyEmail(ctx *gin.Context) {
	var req user.VerifyEmailRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		RespondBadRequest(ctx, "Invalid or expired verification code", nil)
		return
	}

	if u.IsEmailVerified {
		RespondData(ctx, http.StatusOK, "Email already verified", nil)
		return
	}

	if !h.codeMatches(u.VerificationCodeHash, u.VerificationCodeExpiry, req.Code) {
		RespondBadRequest(ctx, "Invalid or expired verification code", nil)
		return
	}

	u.IsEmailVerified = true
	u.VerificationCodeHash = ""
	u.VerificationCodeExpiry = nil

	if err := h.users.Save(cctx, u); err != nil {
		RespondInternal(ctx, "Could not verify email")
		return
	}

	RespondData(ctx, http.StatusOK, "Email verified successfully", nil)
}

func (h *AuthHandler) ResendVerification(ctx *gin.Context) {
	var req user.ResendVerificationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "There is no user with that email")
			return
		}

		RespondInternal(ctx, "Could not resend verification code")
		return
	}

	if u.IsEmailVerified {
		RespondBadRequest(ctx, "Email is already verified", nil)
		return
	}

	code, err := auth.NewEmailCode()

	if err != nil {
		RespondInternal(ctx, "Could not resend verification code")
		return
	}

	expiry := time.Now().UTC().Add(h.cfg.CodeTTL)
	u.VerificationCodeHash = h.jwt.HashCode(code)
	u.VerificationCodeExpiry = &expiry

	if err := h.users.Save(cctx, u); err != nil {
		RespondInternal(ctx, "Could not resend verification code")
		return
	}

	err = h.enqueueJob(cctx, jobs.JobSendVerificationEmail, jobs.SendVerificationEmailPayload{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		Code:      code,
		RequestID: requestIDFrom(ctx),
	})
	if err != nil {
		RespondUpstream(ctx, "Verification email could not be sent")
		return
	}

	RespondData(ctx, http.StatusOK, "Verification code sent", nil)
}

func (h *AuthHandler) ForgotPassword(ctx *gin.Context) {
	var req user.ForgotPasswordRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "There is no user with that email")
			return
		}

		RespondInternal(ctx, "Could not process request")
		return
	}

	code, err := auth.NewEmailCode()

	if err != nil {
		RespondInternal(ctx, "Could not process request")
		return
	}

	expiry := time.Now().UTC().Add(h.cfg.CodeTTL)
	u.ResetCodeHash = h.jwt.HashCode(code)
	u.ResetCodeExpiry = &expiry
	u.ResetCodeVerified = false

	if err := h.users.Save(cctx, u); err != nil {
		RespondInternal(ctx, "Could not process request")
		return
	}

	err = h.enqueueJob(cctx, jobs.JobSendPasswordResetEmail, jobs.SendPasswordResetEmailPayload{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		Code:      code,
		RequestID: requestIDFrom(ctx),
	})
	if err != nil {
		// roll back the stored code so a stale one cannot linger
		u.ResetCodeHash = ""
		u.ResetCodeExpiry = nil
		_ = h.users.Save(cctx, u)

		RespondUpstream(ctx, "Reset email could not be sent")
		return
	}

	RespondData(ctx, http.StatusOK, "Password reset code sent", nil)
}

func (h *AuthHandler) VerifyResetCode(ctx *gin.Context) {
	var req user.VerifyResetCodeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		RespondBadRequest(ctx, "Invalid or expired reset code", nil)
		return
	}

	if !h.codeMatches(u.ResetCodeHash, u.ResetCodeExpiry, req.Code) {
		RespondBadRequest(ctx, "Invalid or expired reset code", nil)
		return
	}

	u.ResetCodeVerified = true

	if err := h.users.Save(cctx, u); err != nil {
		RespondInternal(ctx, "Could not verify reset code")
		return
	}

	RespondData(ctx, http.StatusOK, "Reset code verified", nil)
}

func (h *AuthHandler) ResetPassword(ctx *gin.Context) {
	var req user.ResetPasswordRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		RespondBadRequest(ctx, "Invalid or expired reset code", nil)
		return
	}

	if !h.codeMatches(u.ResetCodeHash, u.ResetCodeExpiry, req.Code) {
		RespondBadRequest(ctx, "Invalid or expired reset code", nil)
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not reset password")
		return
	}

	u.PasswordHash = hash
	u.ResetCodeHash = ""
	u.ResetCodeExpiry = nil
	u.ResetCodeVerified = false

	if err := h.users.Save(cctx, u); err != nil {
		RespondInternal(ctx, "Could not reset password")
		return
	}

	RespondData(ctx, http.StatusOK, "Password reset successfully", nil)
}

// codeMatches compares a stored code hash against the presented raw code.
// Expired or absent codes never match.
func (h *AuthHandler) codeMatches(storedHash string, expiry *time.Time, raw string) bool {
	if storedHash == "" || expiry == nil {
		return false
	}
	if time.Now().UTC().After(*expiry) {
		return false
	}

	return storedHash == h.jwt.HashCode(raw)
}
