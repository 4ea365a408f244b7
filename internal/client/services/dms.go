package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/paydesk/paydesk/internal/client/models"
	"github.com/paydesk/paydesk/internal/client/session"
	"github.com/paydesk/paydesk/internal/client/storage"
)

// DMSService drives the dual-message flow: authorize now, capture or
// release later, refund after capture. The acquirer's answers are passed
// through as raw JSON apart from the identifiers kept locally.
type DMSService interface {
	RegisterAuthorization(ctx context.Context, req models.AuthorizationRequest) (json.RawMessage, error)
	AuthorizationStatus(ctx context.Context, authorizationID string) (json.RawMessage, error)
	ListAuthorizations(ctx context.Context) ([]models.AuthorizationRecord, error)
	Capture(ctx context.Context, req models.CaptureRequest) (json.RawMessage, error)
	Release(ctx context.Context, authorizationID string) (json.RawMessage, error)
	Refund(ctx context.Context, req models.RefundRequest) (json.RawMessage, error)
}

type dmsService struct {
	facade Facade
}

func NewDMSService(facade Facade) DMSService {
	return &dmsService{facade: facade}
}

// RegisterAuthorization falls back to the stored branch when req names none.
// The merchant_authorization_id of the answer is stored for later steps.
func (d *dmsService) RegisterAuthorization(ctx context.Context, req models.AuthorizationRequest) (json.RawMessage, error) {
	branchID, err := orStored(ctx, d.facade, req.BranchExtID, storage.KeyBranchExtID)
	if err != nil {
		return nil, fmt.Errorf("register authorization: %w", err)
	}
	req.BranchExtID = branchID

	raw, err := d.facade.AuthorizedRequest(ctx, http.MethodPost, "/dms/authorization/register", req)
	if err != nil {
		return nil, fmt.Errorf("register authorization: %w", err)
	}

	auth, err := session.Decode[models.Authorization](raw)
	if err != nil {
		return nil, fmt.Errorf("register authorization: %w", err)
	}
	if id := authorizationID(auth); id != "" {
		if err := d.facade.Persist(ctx, storage.KeyAuthorizationID, id); err != nil {
			return nil, fmt.Errorf("register authorization: %w", err)
		}
	}
	return raw, nil
}

// authorizationID looks at the top level first, then inside "authorization".
func authorizationID(a models.Authorization) string {
	if a.MerchantAuthorizationID != "" {
		return a.MerchantAuthorizationID
	}
	var inner struct {
		MerchantAuthorizationID string `json:"merchant_authorization_id"`
	}
	if len(a.Authorization) > 0 && json.Unmarshal(a.Authorization, &inner) == nil {
		return inner.MerchantAuthorizationID
	}
	return ""
}

func (d *dmsService) AuthorizationStatus(ctx context.Context, authorizationID string) (json.RawMessage, error) {
	return d.byAuthorization(ctx, "authorization status", "/dms/authorization/status", authorizationID)
}

func (d *dmsService) Release(ctx context.Context, authorizationID string) (json.RawMessage, error) {
	return d.byAuthorization(ctx, "release", "/dms/release", authorizationID)
}

func (d *dmsService) byAuthorization(ctx context.Context, op, path, authorizationID string) (json.RawMessage, error) {
	id, err := orStored(ctx, d.facade, authorizationID, storage.KeyAuthorizationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	raw, err := d.facade.AuthorizedRequest(ctx, http.MethodPost, path, map[string]string{"merchant_authorization_id": id})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return raw, nil
}

func (d *dmsService) ListAuthorizations(ctx context.Context) ([]models.AuthorizationRecord, error) {
	raw, err := d.facade.AuthorizedRequest(ctx, http.MethodGet, "/dms/authorizations", nil)
	if err != nil {
		return nil, fmt.Errorf("list authorizations: %w", err)
	}
	page, err := session.Decode[struct {
		Transactions []models.AuthorizationRecord `json:"transactions"`
	}](raw)
	if err != nil {
		return nil, fmt.Errorf("list authorizations: %w", err)
	}
	return page.Transactions, nil
}

func (d *dmsService) Capture(ctx context.Context, req models.CaptureRequest) (json.RawMessage, error) {
	id, err := orStored(ctx, d.facade, req.MerchantAuthorizationID, storage.KeyAuthorizationID)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	req.MerchantAuthorizationID = id

	raw, err := d.facade.AuthorizedRequest(ctx, http.MethodPost, "/dms/capture", req)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return raw, nil
}

func (d *dmsService) Refund(ctx context.Context, req models.RefundRequest) (json.RawMessage, error) {
	raw, err := d.facade.AuthorizedRequest(ctx, http.MethodPost, "/dms/refund", req)
	if err != nil {
		return nil, fmt.Errorf("refund: %w", err)
	}
	return raw, nil
}
