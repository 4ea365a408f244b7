package models

// AmountRequest moves money in or out of a wallet. Wallet amounts are
// decimal major units, unlike payment amounts.
type AmountRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

type WalletEntry struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Source      string  `json:"source,omitempty"`
	Destination string  `json:"destination,omitempty"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type VirtualCard struct {
	CardNumber     string `json:"card_number"`
	ExpirationDate string `json:"expiration_date"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at,omitempty"`
}

type Wallet struct {
	MerchantID   string        `json:"merchant_id,omitempty"`
	Balance      float64       `json:"balance"`
	Currency     string        `json:"currency,omitempty"`
	Transactions []WalletEntry `json:"transactions,omitempty"`
	VirtualCards []VirtualCard `json:"virtual_cards,omitempty"`
}

type WalletCreated struct {
	Message string `json:"message"`
	Wallet  Wallet `json:"wallet"`
}

// BalanceChange answers fund, withdraw and deposit calls. The merchant
// wallet reports new_balance, the card wallet reports balance.
type BalanceChange struct {
	Message    string   `json:"message"`
	NewBalance *float64 `json:"new_balance,omitempty"`
	Balance    *float64 `json:"balance,omitempty"`
}

// Current returns whichever balance field the server filled in.
func (b BalanceChange) Current() (float64, bool) {
	switch {
	case b.NewBalance != nil:
		return *b.NewBalance, true
	case b.Balance != nil:
		return *b.Balance, true
	}
	return 0, false
}

type CardIssued struct {
	Message string      `json:"message"`
	Card    VirtualCard `json:"card"`
}
