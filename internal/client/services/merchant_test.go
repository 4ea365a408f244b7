package services

import (
	"context"
	"testing"

	"github.com/paydesk/paydesk/internal/client/models"
	"github.com/paydesk/paydesk/internal/client/session"
	"github.com/paydesk/paydesk/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerchant_Register(t *testing.T) {
	f := loggedIn(t, newFakeFacade(reply{raw: `{
		"message": "Merchant registered successfully!",
		"merchant_id": "65f0",
		"ext_id": "m-1",
		"verification_status": "pending"
	}`}))
	svc := NewMerchantService(f)

	reg, err := svc.RegisterMerchant(context.Background(), models.MerchantRequest{
		Name:         "Corner Shop",
		CategoryCode: "5411",
		Address:      models.Address{City: "Berlin", Country: "DE"},
	})
	require.NoError(t, err)
	assert.Equal(t, "m-1", reg.ExtID)
	assert.Equal(t, "pending", reg.VerificationStatus)

	assertCall(t, f.calls[0], "POST", "/merchant/register-merchant",
		`{"name":"Corner Shop","category_code":"5411","address":{"city":"Berlin","country":"DE"}}`)
	id, ok := f.value(t, storage.KeyMerchantExtID)
	require.True(t, ok)
	assert.Equal(t, "m-1", id)
}

func TestMerchant_RegisterWithoutExtID(t *testing.T) {
	f := loggedIn(t, newFakeFacade(reply{raw: `{"message":"Merchant registered successfully!"}`}))

	_, err := NewMerchantService(f).RegisterMerchant(context.Background(), models.MerchantRequest{Name: "x"})
	require.ErrorIs(t, err, session.ErrMalformedResponse)

	_, ok := f.value(t, storage.KeyMerchantExtID)
	assert.False(t, ok)
}

func TestMerchant_RegisterAlreadyMerchant(t *testing.T) {
	f := loggedIn(t, newFakeFacade(rejected(400, "User is already a merchant")))

	_, err := NewMerchantService(f).RegisterMerchant(context.Background(), models.MerchantRequest{Name: "x"})
	require.ErrorIs(t, err, session.ErrServerRejected)
	assert.Contains(t, err.Error(), "User is already a merchant")
}

func TestMerchant_GetNeedsStoredID(t *testing.T) {
	f := loggedIn(t, newFakeFacade())

	_, err := NewMerchantService(f).GetMerchant(context.Background())
	require.ErrorIs(t, err, ErrMissingContext)
	assert.Contains(t, err.Error(), "merchant_ext_id")
	assert.Empty(t, f.calls)
}

func TestMerchant_Get(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain", `{"ext_id":"m-1","name":"Corner Shop","state":"ACTIVE"}`},
		{"enveloped", `{"data":{"ext_id":"m-1","name":"Corner Shop","state":"ACTIVE"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := loggedIn(t, newFakeFacade(reply{raw: tt.raw}))
			f.seed(t, map[storage.Key]string{storage.KeyMerchantExtID: "m-1"})

			m, err := NewMerchantService(f).GetMerchant(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Corner Shop", m.Name)
			assert.Equal(t, "ACTIVE", m.State)
			assertCall(t, f.calls[0], "GET", "/merchant/merchant/m-1", "")
		})
	}
}

func TestMerchant_GetUnauthorized(t *testing.T) {
	f := loggedIn(t, newFakeFacade(rejected(401, "invalid token")))
	f.seed(t, map[storage.Key]string{storage.KeyMerchantExtID: "123"})

	_, err := NewMerchantService(f).GetMerchant(context.Background())
	require.Error(t, err)
	assert.True(t, session.IsUnauthenticated(err))
}

func TestMerchant_Update(t *testing.T) {
	f := loggedIn(t, newFakeFacade(reply{raw: `{"message":"Merchant updated successfully!"}`}))
	f.seed(t, map[storage.Key]string{storage.KeyMerchantExtID: "m/1"})

	msg, err := NewMerchantService(f).UpdateMerchant(context.Background(), map[string]any{"vat_number": "DE1"})
	require.NoError(t, err)
	assert.Equal(t, "Merchant updated successfully!", msg)
	assertCall(t, f.calls[0], "PUT", "/merchant/merchants/m%2F1", `{"vat_number":"DE1"}`)
}
