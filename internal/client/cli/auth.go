package cli

import (
	"context"
	"errors"
	"time"

	"github.com/paydesk/paydesk/internal/client/models"
)

var errUsageFields = errors.New("usage: give at least one name=value pair")

// attemptError marks a failed anonymous auth call. A 401 there means the
// credentials or code were wrong, not that the current session ended.
type attemptError struct {
	op  string
	err error
}

func (e *attemptError) Error() string { return e.err.Error() }

func (e *attemptError) Unwrap() error { return e.err }

func attempt(op string, err error) error {
	return &attemptError{op: op, err: err}
}

func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := a.required("Full name")
	if err != nil {
		return err
	}
	username, err := a.required("Username")
	if err != nil {
		return err
	}
	email, err := a.required("Email")
	if err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}

	msg, err := a.auth.Register(ctx, models.RegisterRequest{Name: name, Username: username, Email: email, Password: password})
	if err != nil {
		return attempt("Registration", err)
	}
	a.printer.Success("%s", msg)
	a.printer.Info("Next: verify")
	a.refreshStatus(ctx)
	return nil
}

func (a *App) VerifyEmail(ctx context.Context, _ []string) error {
	email, err := a.optional("Email", a.email)
	if err != nil {
		return err
	}
	otp, err := a.required("Verification code")
	if err != nil {
		return err
	}

	msg, err := a.auth.VerifyEmail(ctx, email, otp)
	if err != nil {
		return attempt("Verification", err)
	}
	a.printer.Success("%s", msg)
	return nil
}

func (a *App) ForgotPassword(ctx context.Context, _ []string) error {
	email, err := a.required("Email")
	if err != nil {
		return err
	}
	msg, err := a.auth.ForgotPassword(ctx, email)
	if err != nil {
		return attempt("Reset request", err)
	}
	a.printer.Success("%s", msg)
	return nil
}

func (a *App) ResetPassword(ctx context.Context, _ []string) error {
	email, err := a.required("Email")
	if err != nil {
		return err
	}
	otp, err := a.required("Reset code")
	if err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}

	msg, err := a.auth.ResetPassword(ctx, email, otp, password)
	if err != nil {
		return attempt("Password reset", err)
	}
	a.printer.Success("%s", msg)
	return nil
}

// Login replaces any current session. The token is stored before Login
// returns, so the next command is already authenticated. A rejected login
// leaves the current session as it was.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := a.optional("Email", a.email)
	if err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		return attempt("Login", err)
	}
	a.loggedIn = true
	a.email = email
	a.printer.Success("Logged in as %s", email)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.loggedIn = false
	a.email = ""
	a.printer.Success("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	st, err := a.auth.Status(ctx)
	if err != nil {
		return err
	}
	a.loggedIn = st.Authenticated
	a.email = st.Email

	if !st.Authenticated {
		a.printer.Print("Not logged in")
		return nil
	}

	a.printer.Print("Logged in")
	if st.Email != "" {
		a.printer.Field("email", st.Email)
	}
	if st.Token.Opaque {
		a.printer.Field("token", "opaque")
		return nil
	}
	if st.Token.Subject != "" {
		a.printer.Field("user id", st.Token.Subject)
	}
	if !st.Token.ExpiresAt.IsZero() {
		expires := st.Token.ExpiresAt.Local().Format(time.RFC1123)
		if st.Token.Expired {
			expires += " (expired)"
		}
		a.printer.Field("expires", expires)
	}
	return nil
}

func (a *App) UpdateProfile(ctx context.Context, args []string) error {
	fields, err := fieldsFromArgs(args)
	if err != nil {
		return err
	}
	msg, err := a.auth.UpdateProfile(ctx, fields)
	if err != nil {
		return err
	}
	if email, ok := fields["email"].(string); ok && email != "" {
		a.email = email
	}
	a.printer.Success("%s", msg)
	return nil
}

func fieldsFromArgs(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, errUsageFields
	}
	return models.FieldsFromPairs(args)
}
