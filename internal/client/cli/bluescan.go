package cli

import (
	"context"
	"strings"

	"github.com/paydesk/paydesk/internal/client/models"
)

func (a *App) AddBlueScan(ctx context.Context, _ []string) error {
	name, err := a.required("App name")
	if err != nil {
		return err
	}
	kind, err := a.optional("Type", "")
	if err != nil {
		return err
	}
	host, err := a.optional("SDK host", "")
	if err != nil {
		return err
	}

	created, err := a.bluescan.CreateApp(ctx, models.BlueScanApp{Name: name, Type: kind, SDKHost: host})
	if err != nil {
		return err
	}
	a.printer.Success("%s", created.Message)
	a.printer.Field("app", created.BlueScanAppID)
	a.printer.Field("reference", created.Reference)
	a.printer.Field("state", created.State)
	if created.OnboardingURL != "" {
		a.printer.Field("onboarding", created.OnboardingURL)
	}
	return nil
}

func (a *App) ShowBlueScan(ctx context.Context, args []string) error {
	info, err := a.bluescan.GetApp(ctx, firstArg(args))
	if err != nil {
		return err
	}
	a.printer.Print("%s", info.Name)
	a.printer.Field("id", info.ID)
	a.printer.Field("reference", info.Reference)
	a.printer.Field("type", info.Type)
	a.printer.Field("sdk host", info.SDKHost)
	a.printer.Field("state", info.State)
	if info.MerchantSDKLauncherURL != "" {
		a.printer.Field("launcher", info.MerchantSDKLauncherURL)
	}
	return nil
}

func (a *App) ListBlueScans(ctx context.Context, _ []string) error {
	apps, err := a.bluescan.ListApps(ctx)
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		a.printer.Print("No BlueScan apps yet")
		return nil
	}

	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []string{app.ID, app.Name, app.Type, app.State})
	}
	a.printer.Table([]string{"app", "name", "type", "state"}, rows)
	return nil
}

// UpdateBlueScan takes an optional app id before the name=value pairs.
func (a *App) UpdateBlueScan(ctx context.Context, args []string) error {
	var appID string
	if len(args) > 0 && !strings.Contains(args[0], "=") {
		appID, args = args[0], args[1:]
	}
	fields, err := fieldsFromArgs(args)
	if err != nil {
		return err
	}
	msg, err := a.bluescan.UpdateApp(ctx, appID, fields)
	if err != nil {
		return err
	}
	a.printer.Success("%s", msg)
	return nil
}
