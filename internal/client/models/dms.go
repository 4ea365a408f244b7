package models

import "encoding/json"

// AuthorizationRequest reserves funds for a later capture.
type AuthorizationRequest struct {
	BranchExtID     string `json:"branch_ext_id"`
	RequestedAmount int64  `json:"requested_amount"`
	Currency        string `json:"currency,omitempty"`
	Terminal        string `json:"terminal,omitempty"`
	Operator        string `json:"operator,omitempty"`
	Source          string `json:"source,omitempty"`
}

// Authorization is the acquirer's answer to a register or status call. The
// backend passes it through unchanged, so only the fields the client acts on
// are typed.
type Authorization struct {
	MerchantAuthorizationID string          `json:"merchant_authorization_id,omitempty"`
	State                   string          `json:"state,omitempty"`
	Authorization           json.RawMessage `json:"authorization,omitempty"`
}

type CaptureRequest struct {
	MerchantAuthorizationID string `json:"merchant_authorization_id"`
	AcquirerAuthorizationID string `json:"acquirer_authorization_id"`
	Slip                    string `json:"slip"`
	SlipDateTime            string `json:"slip_date_time"`
}

type RefundRequest struct {
	AcquirerAuthorizationID string `json:"acquirer_authorization_id"`
	Amount                  int64  `json:"amount,omitempty"`
	Reason                  string `json:"reason,omitempty"`
}

// AuthorizationRecord is one row of the authorization history.
type AuthorizationRecord struct {
	MerchantAuthorizationID string `json:"merchant_authorization_id"`
	MerchantExtID           string `json:"merchant_ext_id,omitempty"`
	BranchExtID             string `json:"branch_ext_id"`
	CreatedAt               string `json:"created_at,omitempty"`
	Request                 struct {
		RequestedAmount int64  `json:"requested_amount"`
		Currency        string `json:"currency"`
	} `json:"authorization_request"`
}
