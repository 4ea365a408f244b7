package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/paydesk/paydesk/internal/client/models"
	"github.com/paydesk/paydesk/internal/client/session"
)

// WalletService covers the merchant wallet and the card wallet. The server
// resolves both from the bearer token, so no stored identifier is needed.
type WalletService interface {
	CreateWallet(ctx context.Context) (*models.WalletCreated, error)
	GetWallet(ctx context.Context) (*models.Wallet, error)
	Fund(ctx context.Context, amount float64) (*models.BalanceChange, error)
	Withdraw(ctx context.Context, amount float64) (*models.BalanceChange, error)
	History(ctx context.Context) ([]models.WalletEntry, error)

	CardWallet(ctx context.Context) (*models.Wallet, error)
	Deposit(ctx context.Context, amount float64, description string) (*models.BalanceChange, error)
	CreateVirtualCard(ctx context.Context) (*models.CardIssued, error)
}

type walletService struct {
	facade Facade
}

func NewWalletService(facade Facade) WalletService {
	return &walletService{facade: facade}
}

const merchantWallet = "/merchant/merchant/wallet"

// ErrInvalidAmount is returned, without a request, for amounts that are not
// positive.
var ErrInvalidAmount = errors.New("amount must be positive")

func (w *walletService) CreateWallet(ctx context.Context) (*models.WalletCreated, error) {
	raw, err := w.facade.AuthorizedRequest(ctx, http.MethodPost, merchantWallet+"/create", nil)
	if err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	created, err := session.Decode[models.WalletCreated](raw)
	if err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return &created, nil
}

func (w *walletService) GetWallet(ctx context.Context) (*models.Wallet, error) {
	raw, err := w.facade.AuthorizedRequest(ctx, http.MethodGet, merchantWallet, nil)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	wallet, err := session.Decode[models.Wallet](raw)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return &wallet, nil
}

func (w *walletService) Fund(ctx context.Context, amount float64) (*models.BalanceChange, error) {
	return w.move(ctx, "fund wallet", merchantWallet+"/fund", models.AmountRequest{Amount: amount})
}

func (w *walletService) Withdraw(ctx context.Context, amount float64) (*models.BalanceChange, error) {
	return w.move(ctx, "withdraw", merchantWallet+"/withdraw", models.AmountRequest{Amount: amount})
}

func (w *walletService) History(ctx context.Context) ([]models.WalletEntry, error) {
	raw, err := w.facade.AuthorizedRequest(ctx, http.MethodGet, merchantWallet+"/transactions", nil)
	if err != nil {
		return nil, fmt.Errorf("wallet history: %w", err)
	}
	res, err := session.Decode[struct {
		Transactions []models.WalletEntry `json:"transactions"`
	}](raw)
	if err != nil {
		return nil, fmt.Errorf("wallet history: %w", err)
	}
	return res.Transactions, nil
}

// CardWallet returns the wallet holding the virtual cards.
func (w *walletService) CardWallet(ctx context.Context) (*models.Wallet, error) {
	raw, err := w.facade.AuthorizedRequest(ctx, http.MethodGet, "/wallet/wallets", nil)
	if err != nil {
		return nil, fmt.Errorf("card wallet: %w", err)
	}
	res, err := session.Decode[struct {
		Wallet models.Wallet `json:"wallet"`
	}](raw)
	if err != nil {
		return nil, fmt.Errorf("card wallet: %w", err)
	}
	return &res.Wallet, nil
}

func (w *walletService) Deposit(ctx context.Context, amount float64, description string) (*models.BalanceChange, error) {
	return w.move(ctx, "deposit", "/wallet/deposit", models.AmountRequest{Amount: amount, Description: description})
}

func (w *walletService) CreateVirtualCard(ctx context.Context) (*models.CardIssued, error) {
	raw, err := w.facade.AuthorizedRequest(ctx, http.MethodPost, "/wallet/create_virtual_card", struct{}{})
	if err != nil {
		return nil, fmt.Errorf("create virtual card: %w", err)
	}
	issued, err := session.Decode[models.CardIssued](raw)
	if err != nil {
		return nil, fmt.Errorf("create virtual card: %w", err)
	}
	if issued.Card.CardNumber == "" {
		return nil, fmt.Errorf("create virtual card: %w", missingField(raw, "card"))
	}
	return &issued, nil
}

func (w *walletService) move(ctx context.Context, op, path string, req models.AmountRequest) (*models.BalanceChange, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidAmount)
	}
	raw, err := w.facade.AuthorizedRequest(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := session.Decode[models.BalanceChange](raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &res, nil
}
