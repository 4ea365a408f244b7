package cli

import (
	"context"
	"strings"

	"github.com/paydesk/paydesk/internal/client/models"
)

func (a *App) AddMerchant(ctx context.Context, _ []string) error {
	name, err := a.required("Business name")
	if err != nil {
		return err
	}
	category, err := a.required("Category code (MCC)")
	if err != nil {
		return err
	}
	kind, err := a.optional("Type", "INDIVIDUAL")
	if err != nil {
		return err
	}
	addr, err := a.address()
	if err != nil {
		return err
	}

	reg, err := a.merchants.RegisterMerchant(ctx, models.MerchantRequest{
		Name:         name,
		Type:         kind,
		CategoryCode: category,
		Address:      addr,
	})
	if err != nil {
		return err
	}
	a.printer.Success("%s", reg.Message)
	a.printer.Field("merchant", reg.ExtID)
	a.printer.Field("verification", reg.VerificationStatus)
	return nil
}

func (a *App) ShowMerchant(ctx context.Context, _ []string) error {
	m, err := a.merchants.GetMerchant(ctx)
	if err != nil {
		return err
	}
	a.printer.Print("%s", m.Name)
	a.printer.Field("id", m.ExtID)
	a.printer.Field("type", m.Type)
	a.printer.Field("category", m.CategoryCode)
	a.printer.Field("state", m.State)
	if m.VerificationStatus != "" {
		a.printer.Field("verification", m.VerificationStatus)
	}
	a.printer.Field("address", formatAddress(m.Address))
	return nil
}

func (a *App) UpdateMerchant(ctx context.Context, args []string) error {
	fields, err := fieldsFromArgs(args)
	if err != nil {
		return err
	}
	msg, err := a.merchants.UpdateMerchant(ctx, fields)
	if err != nil {
		return err
	}
	a.printer.Success("%s", msg)
	return nil
}

func (a *App) AddBranch(ctx context.Context, _ []string) error {
	name, err := a.required("Branch name")
	if err != nil {
		return err
	}
	addr, err := a.address()
	if err != nil {
		return err
	}
	phone, err := a.optional("Contact phone (E.164, optional)", "")
	if err != nil {
		return err
	}

	req := models.BranchRequest{Name: name, Address: addr}
	if phone != "" {
		req.Contact = &models.Contact{Phone: phone}
	}

	b, err := a.branches.CreateBranch(ctx, req)
	if err != nil {
		return err
	}
	a.printer.Success("Branch %s created", b.Name)
	a.printer.Field("branch", b.ExtID)
	return nil
}

func (a *App) ListBranches(ctx context.Context, _ []string) error {
	list, err := a.branches.ListBranches(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printer.Print("No branches yet (addbranch)")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, b := range list {
		rows = append(rows, []string{b.ExtID, b.Name, b.State, formatAddress(b.Address)})
	}
	a.printer.Table([]string{"id", "name", "state", "address"}, rows)
	return nil
}

// UpdateBranch takes an optional branch id before the name=value pairs.
func (a *App) UpdateBranch(ctx context.Context, args []string) error {
	var branchID string
	if len(args) > 0 && !strings.Contains(args[0], "=") {
		branchID, args = args[0], args[1:]
	}
	fields, err := fieldsFromArgs(args)
	if err != nil {
		return err
	}
	msg, err := a.branches.UpdateBranch(ctx, branchID, fields)
	if err != nil {
		return err
	}
	a.printer.Success("%s", msg)
	return nil
}

func (a *App) address() (models.Address, error) {
	var addr models.Address
	var err error
	if addr.Line1, err = a.required("Street address"); err != nil {
		return addr, err
	}
	if addr.City, err = a.required("City"); err != nil {
		return addr, err
	}
	if addr.Zip, err = a.optional("Postal code", ""); err != nil {
		return addr, err
	}
	if addr.Country, err = a.required("Country code (e.g. DE)"); err != nil {
		return addr, err
	}
	addr.Country = strings.ToUpper(addr.Country)
	return addr, nil
}

func formatAddress(addr models.Address) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{addr.Line1, addr.Zip + " " + addr.City, addr.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
