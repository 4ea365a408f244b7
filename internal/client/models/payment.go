package models

import "encoding/json"

// PaymentRequest charges a scanned barcode. Amounts are in minor units.
type PaymentRequest struct {
	Barcode           string `json:"barcode"`
	Scheme            string `json:"scheme,omitempty"`
	TotalAmount       int64  `json:"total_amount"`
	RequestedAmount   int64  `json:"requested_amount"`
	ConsumerTipAmount int64  `json:"consumer_tip_amount,omitempty"`
	Currency          string `json:"currency,omitempty"`
	Slip              string `json:"slip,omitempty"`
}

type PaymentResult struct {
	MerchantTxID string `json:"merchant_tx_id"`
	Barcode      string `json:"barcode"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}

type PaymentStatus struct {
	MerchantTxID string          `json:"merchant_tx_id"`
	Status       string          `json:"status"`
	Details      json.RawMessage `json:"bluecode_response,omitempty"`
}

type Transaction struct {
	MerchantTxID    string `json:"merchant_tx_id"`
	Status          string `json:"status"`
	TotalAmount     int64  `json:"total_amount"`
	RequestedAmount int64  `json:"requested_amount"`
	Currency        string `json:"currency"`
	Slip            string `json:"slip,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}
