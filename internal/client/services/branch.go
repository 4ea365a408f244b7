package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/paydesk/paydesk/internal/client/models"
	"github.com/paydesk/paydesk/internal/client/session"
	"github.com/paydesk/paydesk/internal/client/storage"
)

type BranchService interface {
	CreateBranch(ctx context.Context, req models.BranchRequest) (*models.Branch, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
	UpdateBranch(ctx context.Context, branchID string, fields map[string]any) (string, error)
}

type branchService struct {
	facade Facade
}

func NewBranchService(facade Facade) BranchService {
	return &branchService{facade: facade}
}

func (b *branchService) merchantPath(ctx context.Context, format string, args ...any) (string, error) {
	id, err := stored(ctx, b.facade, storage.KeyMerchantExtID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(format, append([]any{url.PathEscape(id)}, args...)...), nil
}

// CreateBranch adds a branch to the stored merchant and remembers its ext_id
// as the default branch for payments and authorizations.
func (b *branchService) CreateBranch(ctx context.Context, req models.BranchRequest) (*models.Branch, error) {
	path, err := b.merchantPath(ctx, "/merchant/merchant/%s/branch")
	if err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}

	raw, err := b.facade.AuthorizedRequest(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}

	created, err := session.Decode[models.Branch](raw)
	if err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}
	if created.ExtID == "" {
		return nil, fmt.Errorf("create branch: %w", missingField(raw, "ext_id"))
	}

	if err := b.facade.Persist(ctx, storage.KeyBranchExtID, created.ExtID); err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}

	if created.Name == "" {
		created.Name = req.Name
	}
	if created.Address == (models.Address{}) {
		created.Address = req.Address
	}
	return &created, nil
}

// ListBranches accepts either a list or a single branch under "data".
func (b *branchService) ListBranches(ctx context.Context) ([]models.Branch, error) {
	path, err := b.merchantPath(ctx, "/merchant/merchants/%s/branches")
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	raw, err := b.facade.AuthorizedRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	list, err := decodeList(raw, func(b models.Branch) bool { return b.ExtID == "" && b.Name == "" })
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return list, nil
}

func (b *branchService) UpdateBranch(ctx context.Context, branchID string, fields map[string]any) (string, error) {
	branchID, err := orStored(ctx, b.facade, branchID, storage.KeyBranchExtID)
	if err != nil {
		return "", fmt.Errorf("update branch: %w", err)
	}
	path, err := b.merchantPath(ctx, "/merchant/merchants/%s/branches/%s", url.PathEscape(branchID))
	if err != nil {
		return "", fmt.Errorf("update branch: %w", err)
	}

	raw, err := b.facade.AuthorizedRequest(ctx, http.MethodPut, path, fields)
	if err != nil {
		return "", fmt.Errorf("update branch: %w", err)
	}
	msg, err := message(raw)
	if err != nil {
		return "", fmt.Errorf("update branch: %w", err)
	}
	return msg, nil
}
