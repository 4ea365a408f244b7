package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/paydesk/paydesk/internal/client/models"
)

const defaultCurrency = "EUR"

func (a *App) Pay(ctx context.Context, _ []string) error {
	barcode, err := a.required("Barcode")
	if err != nil {
		return err
	}
	amount, err := a.amount("Amount")
	if err != nil {
		return err
	}
	currency, err := a.optional("Currency", defaultCurrency)
	if err != nil {
		return err
	}
	slip, err := a.optional("Slip note", "")
	if err != nil {
		return err
	}

	res, err := a.payments.MakePayment(ctx, models.PaymentRequest{
		Barcode:         barcode,
		TotalAmount:     amount,
		RequestedAmount: amount,
		Currency:        strings.ToUpper(currency),
		Slip:            slip,
	})
	if err != nil {
		return err
	}
	a.printer.Success("Payment %s", res.Status)
	a.printer.Field("transaction", res.MerchantTxID)
	if res.Message != "" {
		a.printer.Field("reference", res.Message)
	}
	return nil
}

func (a *App) PaymentStatus(ctx context.Context, args []string) error {
	st, err := a.payments.Status(ctx, firstArg(args))
	if err != nil {
		return err
	}
	a.printer.Field("transaction", st.MerchantTxID)
	a.printer.Field("status", st.Status)
	return nil
}

func (a *App) CancelPayment(ctx context.Context, args []string) error {
	msg, err := a.payments.Cancel(ctx, firstArg(args))
	if err != nil {
		return err
	}
	a.printer.Success("%s", msg)
	return nil
}

func (a *App) ListTransactions(ctx context.Context, _ []string) error {
	list, err := a.payments.ListTransactions(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printer.Print("No transactions yet")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, tx := range list {
		rows = append(rows, []string{tx.MerchantTxID, tx.Status, formatAmount(tx.RequestedAmount, tx.Currency), tx.CreatedAt})
	}
	a.printer.Table([]string{"transaction", "status", "amount", "created"}, rows)
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// formatAmount renders minor units with two decimals.
func formatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign, minor = "-", -minor
	}
	return strings.TrimSpace(fmt.Sprintf("%s%d.%02d %s", sign, minor/100, minor%100, currency))
}
