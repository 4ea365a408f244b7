package storage

// Key names one value the client keeps between runs. Only the constants
// below are accepted by the stores; anything else fails with ErrUnknownKey.
type Key string

const (
	// KeyToken is the bearer token of the current session.
	KeyToken Key = "token"
	// KeyUserEmail is the email the current session logged in with.
	KeyUserEmail Key = "user_email"
	// KeyMerchantExtID is the ext_id returned by merchant registration.
	KeyMerchantExtID Key = "merchant_ext_id"
	// KeyBranchExtID is the ext_id returned by branch creation.
	KeyBranchExtID Key = "branch_ext_id"
	// KeyMerchantTxID is the merchant_tx_id of the last payment.
	KeyMerchantTxID Key = "merchant_tx_id"
	// KeyPaymentStatus is the status reported with the last payment.
	KeyPaymentStatus Key = "payment_status"
	// KeyAuthorizationID is the merchant_authorization_id of the last DMS authorization.
	KeyAuthorizationID Key = "merchant_authorization_id"
	// KeyLastResponse caches the raw JSON of the last payment response.
	KeyLastResponse Key = "last_response"
	// KeyBlueScanID is the id of the last BlueScan app created for the branch.
	KeyBlueScanID Key = "bluescan_id"
)

var allKeys = []Key{
	KeyToken,
	KeyUserEmail,
	KeyMerchantExtID,
	KeyBranchExtID,
	KeyMerchantTxID,
	KeyPaymentStatus,
	KeyAuthorizationID,
	KeyLastResponse,
	KeyBlueScanID,
}

// AllKeys returns the canonical key set in a stable order.
func AllKeys() []Key {
	out := make([]Key, len(allKeys))
	copy(out, allKeys)
	return out
}

func (k Key) Valid() bool {
	for _, known := range allKeys {
		if k == known {
			return true
		}
	}
	return false
}

func (k Key) String() string { return string(k) }
