package models

type Address struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Line1   string `json:"line_1,omitempty"`
	Line2   string `json:"line_2,omitempty"`
}

type Contact struct {
	Name   string   `json:"name,omitempty"`
	Emails []string `json:"emails,omitempty"`
	Phone  string   `json:"phone,omitempty"`
	Gender string   `json:"gender,omitempty"`
}

type TransactionSettings struct {
	BookingReferencePrefix string `json:"booking_reference_prefix,omitempty"`
	DefaultSource          string `json:"default_source,omitempty"`
}

// MerchantRequest registers a merchant. Name, CategoryCode and Address are
// required by the backend.
type MerchantRequest struct {
	Name                string               `json:"name"`
	Type                string               `json:"type,omitempty"`
	RegistrationNumber  string               `json:"registration_number,omitempty"`
	VATNumber           string               `json:"vat_number,omitempty"`
	CategoryCode        string               `json:"category_code"`
	Address             Address              `json:"address"`
	Contact             *Contact             `json:"contact,omitempty"`
	TransactionSettings *TransactionSettings `json:"transaction_settings,omitempty"`
}

type MerchantRegistration struct {
	Message            string `json:"message"`
	MerchantID         string `json:"merchant_id"`
	ExtID              string `json:"ext_id"`
	VerificationStatus string `json:"verification_status"`
}

type Merchant struct {
	ExtID              string  `json:"ext_id"`
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	CategoryCode       string  `json:"category_code"`
	State              string  `json:"state"`
	VerificationStatus string  `json:"verification_status"`
	Address            Address `json:"address"`
	Contact            Contact `json:"contact"`
}

type BranchRequest struct {
	Name    string   `json:"name"`
	State   string   `json:"state,omitempty"`
	Address Address  `json:"address"`
	Contact *Contact `json:"contact,omitempty"`
}

type Branch struct {
	ExtID      string  `json:"ext_id"`
	MerchantID string  `json:"merchant_id,omitempty"`
	Name       string  `json:"name"`
	State      string  `json:"state,omitempty"`
	Address    Address `json:"address"`
}
