package cli

import (
	"context"
	"strings"

	"github.com/paydesk/paydesk/internal/client/models"
)

func (a *App) Authorize(ctx context.Context, _ []string) error {
	amount, err := a.amount("Amount to reserve")
	if err != nil {
		return err
	}
	currency, err := a.optional("Currency", defaultCurrency)
	if err != nil {
		return err
	}
	branch, err := a.optional("Branch id (empty for the last created)", "")
	if err != nil {
		return err
	}

	raw, err := a.dms.RegisterAuthorization(ctx, models.AuthorizationRequest{
		BranchExtID:     branch,
		RequestedAmount: amount,
		Currency:        strings.ToUpper(currency),
	})
	if err != nil {
		return err
	}
	a.printer.Success("Authorization registered")
	a.printer.JSON(raw)
	return nil
}

func (a *App) AuthorizationStatus(ctx context.Context, args []string) error {
	raw, err := a.dms.AuthorizationStatus(ctx, firstArg(args))
	if err != nil {
		return err
	}
	a.printer.JSON(raw)
	return nil
}

func (a *App) ListAuthorizations(ctx context.Context, _ []string) error {
	list, err := a.dms.ListAuthorizations(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printer.Print("No authorizations yet")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, r := range list {
		rows = append(rows, []string{
			r.MerchantAuthorizationID,
			r.BranchExtID,
			formatAmount(r.Request.RequestedAmount, r.Request.Currency),
			r.CreatedAt,
		})
	}
	a.printer.Table([]string{"authorization", "branch", "amount", "created"}, rows)
	return nil
}

func (a *App) Capture(ctx context.Context, _ []string) error {
	authID, err := a.optional("Authorization id (empty for the last registered)", "")
	if err != nil {
		return err
	}
	acquirerID, err := a.required("Acquirer authorization id")
	if err != nil {
		return err
	}
	slip, err := a.optional("Slip note", "capture")
	if err != nil {
		return err
	}

	raw, err := a.dms.Capture(ctx, models.CaptureRequest{
		MerchantAuthorizationID: authID,
		AcquirerAuthorizationID: acquirerID,
		Slip:                    slip,
		SlipDateTime:            a.now().UTC().Format("2006-01-02T15:04:05Z"),
	})
	if err != nil {
		return err
	}
	a.printer.Success("Capture sent")
	a.printer.JSON(raw)
	return nil
}

func (a *App) Release(ctx context.Context, args []string) error {
	raw, err := a.dms.Release(ctx, firstArg(args))
	if err != nil {
		return err
	}
	a.printer.Success("Release sent")
	a.printer.JSON(raw)
	return nil
}

func (a *App) Refund(ctx context.Context, _ []string) error {
	acquirerID, err := a.required("Acquirer authorization id")
	if err != nil {
		return err
	}
	amount, err := a.amount("Amount to refund")
	if err != nil {
		return err
	}
	reason, err := a.optional("Reason", "")
	if err != nil {
		return err
	}

	raw, err := a.dms.Refund(ctx, models.RefundRequest{
		AcquirerAuthorizationID: acquirerID,
		Amount:                  amount,
		Reason:                  reason,
	})
	if err != nil {
		return err
	}
	a.printer.Success("Refund sent")
	a.printer.JSON(raw)
	return nil
}
