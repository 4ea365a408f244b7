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

// PaymentService runs single-message barcode payments. Transaction id
// arguments may be empty, in which case the last stored one is used.
type PaymentService interface {
	MakePayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error)
	Status(ctx context.Context, txID string) (*models.PaymentStatus, error)
	Cancel(ctx context.Context, txID string) (string, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
}

type paymentService struct {
	facade Facade
}

func NewPaymentService(facade Facade) PaymentService {
	return &paymentService{facade: facade}
}

func (p *paymentService) MakePayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	raw, err := p.facade.AuthorizedRequest(ctx, http.MethodPost, "/payment/make-payment", req)
	if err != nil {
		return nil, fmt.Errorf("make payment: %w", err)
	}

	res, err := session.Decode[models.PaymentResult](raw)
	if err != nil {
		return nil, fmt.Errorf("make payment: %w", err)
	}
	if res.MerchantTxID == "" {
		return nil, fmt.Errorf("make payment: %w", missingField(raw, "merchant_tx_id"))
	}

	err = p.facade.PersistMany(ctx, map[storage.Key]string{
		storage.KeyMerchantTxID:  res.MerchantTxID,
		storage.KeyPaymentStatus: res.Status,
		storage.KeyLastResponse:  string(raw),
	})
	if err != nil {
		return nil, fmt.Errorf("make payment: %w", err)
	}
	return &res, nil
}

func (p *paymentService) Status(ctx context.Context, txID string) (*models.PaymentStatus, error) {
	txID, err := orStored(ctx, p.facade, txID, storage.KeyMerchantTxID)
	if err != nil {
		return nil, fmt.Errorf("payment status: %w", err)
	}

	q := url.Values{"merchant_tx_id": []string{txID}}
	raw, err := p.facade.AuthorizedRequest(ctx, http.MethodGet, "/payment/status?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("payment status: %w", err)
	}

	st, err := session.Decode[models.PaymentStatus](raw)
	if err != nil {
		return nil, fmt.Errorf("payment status: %w", err)
	}
	if st.MerchantTxID == "" {
		st.MerchantTxID = txID
	}

	if err := p.rememberStatus(ctx, txID, st.Status); err != nil {
		return nil, fmt.Errorf("payment status: %w", err)
	}
	return &st, nil
}

func (p *paymentService) Cancel(ctx context.Context, txID string) (string, error) {
	txID, err := orStored(ctx, p.facade, txID, storage.KeyMerchantTxID)
	if err != nil {
		return "", fmt.Errorf("cancel payment: %w", err)
	}

	raw, err := p.facade.AuthorizedRequest(ctx, http.MethodPost, "/payment/cancel", map[string]string{"merchant_tx_id": txID})
	if err != nil {
		return "", fmt.Errorf("cancel payment: %w", err)
	}

	res, err := session.Decode[models.PaymentResult](raw)
	if err != nil {
		return "", fmt.Errorf("cancel payment: %w", err)
	}
	if err := p.rememberStatus(ctx, txID, res.Status); err != nil {
		return "", fmt.Errorf("cancel payment: %w", err)
	}
	return res.Message, nil
}

// rememberStatus updates the stored status only for the stored transaction.
func (p *paymentService) rememberStatus(ctx context.Context, txID, status string) error {
	if status == "" {
		return nil
	}
	current, ok, err := p.facade.Lookup(ctx, storage.KeyMerchantTxID)
	if err != nil {
		return err
	}
	if !ok || current != txID {
		return nil
	}
	return p.facade.Persist(ctx, storage.KeyPaymentStatus, status)
}

func (p *paymentService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	raw, err := p.facade.AuthorizedRequest(ctx, http.MethodPost, "/payment/merchants/transactions", nil)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	list, err := session.Decode[[]models.Transaction](raw)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return list, nil
}
