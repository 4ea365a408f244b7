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

func TestBranch_CreateNeedsMerchant(t *testing.T) {
	f := loggedIn(t, newFakeFacade())

	_, err := NewBranchService(f).CreateBranch(context.Background(), models.BranchRequest{Name: "Main"})
	require.ErrorIs(t, err, ErrMissingContext)
	assert.Empty(t, f.calls)
}

func TestBranch_Create(t *testing.T) {
	f := loggedIn(t, newFakeFacade(reply{raw: `{"message":"Branch created successfully!","ext_id":"b-1","merchant_branch_id":"b-1"}`}))
	f.seed(t, map[storage.Key]string{storage.KeyMerchantExtID: "m-1"})

	b, err := NewBranchService(f).CreateBranch(context.Background(), models.BranchRequest{
		Name:    "Main",
		Address: models.Address{City: "Berlin", Country: "DE", Line1: "Str. 1", Zip: "10115"},
	})
	require.NoError(t, err)
	assert.Equal(t, "b-1", b.ExtID)
	assert.Equal(t, "Main", b.Name)
	assert.Equal(t, "Berlin", b.Address.City)

	assertCall(t, f.calls[0], "POST", "/merchant/merchant/m-1/branch",
		`{"name":"Main","address":{"city":"Berlin","country":"DE","zip":"10115","line_1":"Str. 1"}}`)
	id, ok := f.value(t, storage.KeyBranchExtID)
	require.True(t, ok)
	assert.Equal(t, "b-1", id)
}

func TestBranch_CreateRejectedKeepsOldBranch(t *testing.T) {
	f := loggedIn(t, newFakeFacade(rejected(400, "Invalid country code")))
	f.seed(t, map[storage.Key]string{storage.KeyMerchantExtID: "m-1", storage.KeyBranchExtID: "b-0"})

	_, err := NewBranchService(f).CreateBranch(context.Background(), models.BranchRequest{Name: "Main"})
	require.ErrorIs(t, err, session.ErrServerRejected)

	id, _ := f.value(t, storage.KeyBranchExtID)
	assert.Equal(t, "b-0", id)
}

func TestBranch_List(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"list", `{"data":[{"ext_id":"b-1","name":"Main"},{"ext_id":"b-2","name":"Airport"}]}`, []string{"b-1", "b-2"}},
		{"single", `{"data":{"ext_id":"b-1","name":"Main"}}`, []string{"b-1"}},
		{"bare list", `[{"ext_id":"b-3","name":"Depot"}]`, []string{"b-3"}},
		{"null data", `{"data":null}`, nil},
		{"empty", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := loggedIn(t, newFakeFacade(reply{raw: tt.raw}))
			f.seed(t, map[storage.Key]string{storage.KeyMerchantExtID: "m-1"})

			list, err := NewBranchService(f).ListBranches(context.Background())
			require.NoError(t, err)

			var ids []string
			for _, b := range list {
				ids = append(ids, b.ExtID)
			}
			assert.Equal(t, tt.want, ids)
			assertCall(t, f.calls[0], "GET", "/merchant/merchants/m-1/branches", "")
		})
	}
}

func TestBranch_ListMalformed(t *testing.T) {
	f := loggedIn(t, newFakeFacade(reply{raw: `{"data":"nope"}`}))
	f.seed(t, map[storage.Key]string{storage.KeyMerchantExtID: "m-1"})

	_, err := NewBranchService(f).ListBranches(context.Background())
	require.ErrorIs(t, err, session.ErrMalformedResponse)
}

func TestBranch_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("stored branch", func(t *testing.T) {
		f := loggedIn(t, newFakeFacade(reply{raw: `{"message":"Branch updated successfully"}`}))
		f.seed(t, map[storage.Key]string{storage.KeyMerchantExtID: "m-1", storage.KeyBranchExtID: "b-1"})

		msg, err := NewBranchService(f).UpdateBranch(ctx, "", map[string]any{"state": "INACTIVE"})
		require.NoError(t, err)
		assert.Equal(t, "Branch updated successfully", msg)
		assertCall(t, f.calls[0], "PUT", "/merchant/merchants/m-1/branches/b-1", `{"state":"INACTIVE"}`)
	})

	t.Run("explicit branch", func(t *testing.T) {
		f := loggedIn(t, newFakeFacade(reply{raw: `{"message":"ok"}`}))
		f.seed(t, map[storage.Key]string{storage.KeyMerchantExtID: "m-1"})

		_, err := NewBranchService(f).UpdateBranch(ctx, "b-9", map[string]any{"name": "X"})
		require.NoError(t, err)
		assertCall(t, f.calls[0], "PUT", "/merchant/merchants/m-1/branches/b-9", `{"name":"X"}`)
	})

	t.Run("no branch", func(t *testing.T) {
		f := loggedIn(t, newFakeFacade())
		f.seed(t, map[storage.Key]string{storage.KeyMerchantExtID: "m-1"})

		_, err := NewBranchService(f).UpdateBranch(ctx, "", nil)
		require.ErrorIs(t, err, ErrMissingContext)
		assert.Contains(t, err.Error(), "branch_ext_id")
		assert.Empty(t, f.calls)
	})
}
