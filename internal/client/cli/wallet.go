package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/paydesk/paydesk/internal/client/models"
)

func (a *App) CreateWallet(ctx context.Context, _ []string) error {
	created, err := a.wallets.CreateWallet(ctx)
	if err != nil {
		return err
	}
	a.printer.Success("%s", created.Message)
	a.printer.Field("balance", formatMajor(created.Wallet.Balance, created.Wallet.Currency))
	return nil
}

func (a *App) ShowWallet(ctx context.Context, _ []string) error {
	w, err := a.wallets.GetWallet(ctx)
	if err != nil {
		return err
	}
	a.printer.Field("balance", formatMajor(w.Balance, w.Currency))
	a.printer.Field("movements", strconv.Itoa(len(w.Transactions)))
	return nil
}

func (a *App) FundWallet(ctx context.Context, _ []string) error {
	amount, err := a.decimal("Amount to add")
	if err != nil {
		return err
	}
	change, err := a.wallets.Fund(ctx, amount)
	if err != nil {
		return err
	}
	a.balanceChanged(change)
	return nil
}

func (a *App) Withdraw(ctx context.Context, _ []string) error {
	amount, err := a.decimal("Amount to withdraw")
	if err != nil {
		return err
	}
	change, err := a.wallets.Withdraw(ctx, amount)
	if err != nil {
		return err
	}
	a.balanceChanged(change)
	return nil
}

func (a *App) WalletHistory(ctx context.Context, _ []string) error {
	entries, err := a.wallets.History(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.printer.Print("No wallet movements yet")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		counterpart := e.Destination
		if counterpart == "" {
			counterpart = e.Source
		}
		rows = append(rows, []string{e.Type, formatMajor(e.Amount, ""), counterpart, e.CreatedAt})
	}
	a.printer.Table([]string{"type", "amount", "counterpart", "created"}, rows)
	return nil
}

func (a *App) Deposit(ctx context.Context, _ []string) error {
	amount, err := a.decimal("Amount to deposit")
	if err != nil {
		return err
	}
	description, err := a.optional("Description", "")
	if err != nil {
		return err
	}
	change, err := a.wallets.Deposit(ctx, amount, description)
	if err != nil {
		return err
	}
	a.balanceChanged(change)
	return nil
}

func (a *App) ListCards(ctx context.Context, _ []string) error {
	w, err := a.wallets.CardWallet(ctx)
	if err != nil {
		return err
	}
	a.printer.Field("balance", formatMajor(w.Balance, w.Currency))
	if len(w.VirtualCards) == 0 {
		a.printer.Print("No virtual cards yet")
		return nil
	}

	rows := make([][]string, 0, len(w.VirtualCards))
	for _, c := range w.VirtualCards {
		rows = append(rows, []string{maskCard(c.CardNumber), c.ExpirationDate, c.Status})
	}
	a.printer.Table([]string{"card", "expires", "status"}, rows)
	return nil
}

func (a *App) CreateCard(ctx context.Context, _ []string) error {
	issued, err := a.wallets.CreateVirtualCard(ctx)
	if err != nil {
		return err
	}
	a.printer.Success("%s", issued.Message)
	a.printer.Field("card", maskCard(issued.Card.CardNumber))
	a.printer.Field("expires", issued.Card.ExpirationDate)
	return nil
}

func (a *App) balanceChanged(change *models.BalanceChange) {
	a.printer.Success("%s", change.Message)
	if balance, ok := change.Current(); ok {
		a.printer.Field("balance", formatMajor(balance, ""))
	}
}

func formatMajor(amount float64, currency string) string {
	return strings.TrimSpace(strconv.FormatFloat(amount, 'f', 2, 64) + " " + currency)
}

// maskCard keeps the last four digits.
func maskCard(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
