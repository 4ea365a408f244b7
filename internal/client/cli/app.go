package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/paydesk/paydesk/internal/client/config"
	"github.com/paydesk/paydesk/internal/client/services"
	"github.com/paydesk/paydesk/internal/client/session"
	"github.com/paydesk/paydesk/internal/client/storage"
	"github.com/paydesk/paydesk/internal/logging"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	auth      services.AuthService
	merchants services.MerchantService
	branches  services.BranchService
	payments  services.PaymentService
	dms       services.DMSService
	wallets   services.WalletService
	bluescan  services.BlueScanService

	printer *Printer
	out     io.Writer
	reader  *bufio.Reader
	now     func() time.Time
	closeFn func() error

	loggedIn bool
	email    string
}

// NewApp opens the local store and wires the session facade and services
// around it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, storage.Options{
		Driver:    c.StoreDriver,
		DSN:       c.StoreDSN,
		RedisAddr: c.RedisAddr,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", c.StoreDriver, err)
	}

	sess := session.New(c.ServerBaseURL, store,
		session.WithTimeout(c.RequestTimeout),
		session.WithLogger(logger),
	)

	return &App{
		config:    c,
		logger:    logger,
		auth:      services.NewAuthService(sess),
		merchants: services.NewMerchantService(sess),
		branches:  services.NewBranchService(sess),
		payments:  services.NewPaymentService(sess),
		dms:       services.NewDMSService(sess),
		wallets:   services.NewWalletService(sess),
		bluescan:  services.NewBlueScanService(sess),
		printer:   NewPrinter(os.Stdout, os.Stderr, ResolveColors()),
		out:       os.Stdout,
		reader:    bufio.NewReader(os.Stdin),
		now:       time.Now,
		closeFn:   store.Close,
	}, nil
}

// Run restores the stored session and blocks in the REPL until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.closeFn(); err != nil {
			a.logger.Error(ctx, "failed to close store", "error", err)
		}
	}()

	a.refreshStatus(ctx)
	a.printer.Info("Welcome to paydesk (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) getStatus() string {
	if !a.loggedIn {
		return "(anonymous)"
	}
	if a.email == "" {
		return "(logged in)"
	}
	return fmt.Sprintf("(%s)", a.email)
}

func (a *App) refreshStatus(ctx context.Context) {
	st, err := a.auth.Status(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to read session status", "error", err)
		return
	}
	a.loggedIn = st.Authenticated
	a.email = st.Email
}

// fail reports a command error. A rejected or missing session moves the
// client back to anonymous: the stored token is cleared and the user is
// asked to log in again. Failed login or registration attempts never touch
// the session.
func (a *App) fail(ctx context.Context, err error) {
	var failed *attemptError
	switch {
	case errors.Is(err, session.ErrNetworkFailure):
		a.printer.Error("Server unreachable: %v", err)
	case errors.As(err, &failed):
		a.printer.Error("%s failed: %s", failed.op, reason(err))
	case session.IsUnauthenticated(err):
		if a.loggedIn {
			if lerr := a.auth.Logout(ctx); lerr != nil {
				a.logger.Error(ctx, "failed to clear session", "error", lerr)
			}
		}
		a.loggedIn = false
		a.email = ""
		msg := "Not logged in or session expired"
		if m := serverMessage(err); m != "" {
			msg += " (" + m + ")"
		}
		a.printer.Warning("%s, please log in (login)", msg)
	case errors.Is(err, services.ErrMissingContext):
		a.printer.Error("%v", err)
		a.printer.Info("Hint: create the merchant, branch or payment this command refers to first")
	default:
		a.printer.Error("%v", err)
	}
}

func serverMessage(err error) string {
	var re *session.RequestError
	if errors.As(err, &re) {
		return re.ServerMessage
	}
	return ""
}

// reason prefers the server's own words over the wrapped error chain.
func reason(err error) string {
	if m := serverMessage(err); m != "" {
		return m
	}
	return err.Error()
}

func (a *App) commands() []command {
	return []command{
		{name: "register", usage: "register                 create an account", access: anonymousOnly, run: a.Register},
		{name: "verify", usage: "verify                   confirm email with the emailed code", access: anonymousOnly, run: a.VerifyEmail},
		{name: "forgot", usage: "forgot                   request a password reset code", access: anonymousOnly, run: a.ForgotPassword},
		{name: "reset", usage: "reset                    set a new password with the reset code", access: anonymousOnly, run: a.ResetPassword},
		{name: "login", usage: "login                    start a session", access: anyone, run: a.Login},
		{name: "whoami", usage: "whoami                   show the current session", access: anyone, run: a.WhoAmI},
		{name: "logout", usage: "logout                   end the session", access: authenticated, run: a.Logout},
		{name: "profile", usage: "profile k=v...           update profile fields", access: authenticated, run: a.UpdateProfile},
		{name: "merchant", usage: "merchant                 show the merchant", access: authenticated, run: a.ShowMerchant},
		{name: "addmerchant", usage: "addmerchant              register as a merchant", access: authenticated, run: a.AddMerchant},
		{name: "updatemerchant", usage: "updatemerchant k=v...    update merchant fields", access: authenticated, run: a.UpdateMerchant},
		{name: "addbranch", usage: "addbranch                add a branch", access: authenticated, run: a.AddBranch},
		{name: "branches", usage: "branches                 list branches", access: authenticated, run: a.ListBranches},
		{name: "updatebranch", usage: "updatebranch [id] k=v... update a branch", access: authenticated, run: a.UpdateBranch},
		{name: "pay", usage: "pay                      charge a barcode", access: authenticated, run: a.Pay},
		{name: "paystatus", usage: "paystatus [tx]           show a payment status", access: authenticated, run: a.PaymentStatus},
		{name: "paycancel", usage: "paycancel [tx]           cancel a pending payment", access: authenticated, run: a.CancelPayment},
		{name: "transactions", usage: "transactions             list payments", access: authenticated, run: a.ListTransactions},
		{name: "authorize", usage: "authorize                reserve an amount", access: authenticated, run: a.Authorize},
		{name: "authstatus", usage: "authstatus [id]          show an authorization", access: authenticated, run: a.AuthorizationStatus},
		{name: "authorizations", usage: "authorizations           list authorizations", access: authenticated, run: a.ListAuthorizations},
		{name: "capture", usage: "capture                  capture an authorization", access: authenticated, run: a.Capture},
		{name: "release", usage: "release [id]             release an authorization", access: authenticated, run: a.Release},
		{name: "refund", usage: "refund                   refund a captured amount", access: authenticated, run: a.Refund},
		{name: "addwallet", usage: "addwallet                open the merchant wallet", access: authenticated, run: a.CreateWallet},
		{name: "wallet", usage: "wallet                   show the wallet balance", access: authenticated, run: a.ShowWallet},
		{name: "fund", usage: "fund                     add funds to the wallet", access: authenticated, run: a.FundWallet},
		{name: "withdraw", usage: "withdraw                 withdraw to the bank account", access: authenticated, run: a.Withdraw},
		{name: "wallethistory", usage: "wallethistory            list wallet movements", access: authenticated, run: a.WalletHistory},
		{name: "deposit", usage: "deposit                  deposit to the card wallet", access: authenticated, run: a.Deposit},
		{name: "cards", usage: "cards                    list virtual cards", access: authenticated, run: a.ListCards},
		{name: "addcard", usage: "addcard                  issue a virtual card", access: authenticated, run: a.CreateCard},
		{name: "addbluescan", usage: "addbluescan              create a BlueScan app for the branch", access: authenticated, run: a.AddBlueScan},
		{name: "bluescan", usage: "bluescan [id]            show a BlueScan app", access: authenticated, run: a.ShowBlueScan},
		{name: "bluescans", usage: "bluescans                list BlueScan apps of the branch", access: authenticated, run: a.ListBlueScans},
		{name: "updatebluescan", usage: "updatebluescan [id] k=v... update a BlueScan app", access: authenticated, run: a.UpdateBlueScan},
	}
}
