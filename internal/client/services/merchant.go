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

type MerchantService interface {
	RegisterMerchant(ctx context.Context, req models.MerchantRequest) (*models.MerchantRegistration, error)
	GetMerchant(ctx context.Context) (*models.Merchant, error)
	UpdateMerchant(ctx context.Context, fields map[string]any) (string, error)
}

type merchantService struct {
	facade Facade
}

func NewMerchantService(facade Facade) MerchantService {
	return &merchantService{facade: facade}
}

// RegisterMerchant turns the logged-in user into a merchant and remembers
// the assigned ext_id for every later merchant and branch call.
func (m *merchantService) RegisterMerchant(ctx context.Context, req models.MerchantRequest) (*models.MerchantRegistration, error) {
	raw, err := m.facade.AuthorizedRequest(ctx, http.MethodPost, "/merchant/register-merchant", req)
	if err != nil {
		return nil, fmt.Errorf("register merchant: %w", err)
	}

	reg, err := session.Decode[models.MerchantRegistration](raw)
	if err != nil {
		return nil, fmt.Errorf("register merchant: %w", err)
	}
	if reg.ExtID == "" {
		return nil, fmt.Errorf("register merchant: %w", missingField(raw, "ext_id"))
	}

	if err := m.facade.Persist(ctx, storage.KeyMerchantExtID, reg.ExtID); err != nil {
		return nil, fmt.Errorf("register merchant: %w", err)
	}
	return &reg, nil
}

func (m *merchantService) GetMerchant(ctx context.Context) (*models.Merchant, error) {
	id, err := stored(ctx, m.facade, storage.KeyMerchantExtID)
	if err != nil {
		return nil, fmt.Errorf("get merchant: %w", err)
	}

	raw, err := m.facade.AuthorizedRequest(ctx, http.MethodGet, "/merchant/merchant/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get merchant: %w", err)
	}

	merchant, err := session.Decode[models.Merchant](unwrapData(raw))
	if err != nil {
		return nil, fmt.Errorf("get merchant: %w", err)
	}
	if merchant.ExtID == "" {
		merchant.ExtID = id
	}
	return &merchant, nil
}

func (m *merchantService) UpdateMerchant(ctx context.Context, fields map[string]any) (string, error) {
	id, err := stored(ctx, m.facade, storage.KeyMerchantExtID)
	if err != nil {
		return "", fmt.Errorf("update merchant: %w", err)
	}

	raw, err := m.facade.AuthorizedRequest(ctx, http.MethodPut, "/merchant/merchants/"+url.PathEscape(id), fields)
	if err != nil {
		return "", fmt.Errorf("update merchant: %w", err)
	}
	msg, err := message(raw)
	if err != nil {
		return "", fmt.Errorf("update merchant: %w", err)
	}
	return msg, nil
}
