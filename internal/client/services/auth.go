package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/paydesk/paydesk/internal/client/models"
	"github.com/paydesk/paydesk/internal/client/session"
	"github.com/paydesk/paydesk/internal/client/storage"
)

// AuthService covers the account lifecycle.
//
// Register, VerifyEmail, ForgotPassword and ResetPassword are anonymous and
// return the server's acknowledgement text. Login stores the session token
// and the email it was issued for; Logout forgets both.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	VerifyEmail(ctx context.Context, email, otp string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)
	Login(ctx context.Context, email, password string) error
	UpdateProfile(ctx context.Context, fields map[string]any) (string, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (SessionStatus, error)
}

// SessionStatus describes the local session for display.
type SessionStatus struct {
	Authenticated bool
	Email         string
	Token         session.TokenInfo
}

type authService struct {
	facade Facade
	now    func() time.Time
}

func NewAuthService(facade Facade) AuthService {
	return &authService{facade: facade, now: time.Now}
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	raw, err := a.facade.Request(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	var ack struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ack); err != nil {
			return "", fmt.Errorf("register: %w", missingField(raw, "message"))
		}
	}
	if ack.Token != "" {
		if err := a.facade.Persist(ctx, storage.KeyToken, ack.Token); err != nil {
			return "", fmt.Errorf("register: %w", err)
		}
	}
	return ack.Message, nil
}

func (a *authService) VerifyEmail(ctx context.Context, email, otp string) (string, error) {
	return a.anonymous(ctx, "verify email", "/auth/verify-email", models.VerifyEmailRequest{Email: email, OTP: otp})
}

func (a *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	return a.anonymous(ctx, "forgot password", "/auth/forgot-password", map[string]string{"email": email})
}

func (a *authService) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	req := models.ResetPasswordRequest{Email: email, OTP: otp, NewPassword: newPassword}
	return a.anonymous(ctx, "reset password", "/auth/reset-password", req)
}

func (a *authService) anonymous(ctx context.Context, op, path string, body any) (string, error) {
	raw, err := a.facade.Request(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	msg, err := message(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return msg, nil
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	if _, err := a.facade.LoginOrRegister(ctx, "/auth/login", models.Credentials{Email: email, Password: password}); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := a.facade.Persist(ctx, storage.KeyUserEmail, email); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (a *authService) UpdateProfile(ctx context.Context, fields map[string]any) (string, error) {
	raw, err := a.facade.AuthorizedRequest(ctx, http.MethodPut, "/auth/update-profile", fields)
	if err != nil {
		return "", fmt.Errorf("update profile: %w", err)
	}
	msg, err := message(raw)
	if err != nil {
		return "", fmt.Errorf("update profile: %w", err)
	}
	if email, ok := fields["email"].(string); ok && email != "" {
		if err := a.facade.Persist(ctx, storage.KeyUserEmail, email); err != nil {
			return "", fmt.Errorf("update profile: %w", err)
		}
	}
	return msg, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.facade.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := a.facade.Clear(ctx, storage.KeyUserEmail); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) Status(ctx context.Context) (SessionStatus, error) {
	token, ok, err := a.facade.GetToken(ctx)
	if err != nil {
		return SessionStatus{}, err
	}
	email, _, err := a.facade.Lookup(ctx, storage.KeyUserEmail)
	if err != nil {
		return SessionStatus{}, err
	}

	st := SessionStatus{Authenticated: ok, Email: email}
	if ok {
		st.Token = session.DescribeToken(token, a.now())
	}
	return st, nil
}
