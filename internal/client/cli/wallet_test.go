package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paydesk/paydesk/internal/client/models"
	"github.com/paydesk/paydesk/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletBackend(t *testing.T, amounts *[]models.AmountRequest) http.Handler {
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
	amount := func(r *http.Request) {
		var req models.AmountRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*amounts = append(*amounts, req)
	}

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, `{"message":"Login successful","token":"tok-1"}`)
	})
	mux.HandleFunc("POST /merchant/merchant/wallet/create", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusCreated, `{"message":"Wallet created","wallet":{"balance":0,"currency":"EUR"}}`)
	})
	mux.HandleFunc("POST /merchant/merchant/wallet/fund", func(w http.ResponseWriter, r *http.Request) {
		amount(r)
		reply(w, http.StatusOK, `{"message":"Wallet funded","new_balance":12.5}`)
	})
	mux.HandleFunc("POST /merchant/merchant/wallet/withdraw", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusBadRequest, `{"error":"Insufficient balance"}`)
	})
	mux.HandleFunc("GET /merchant/merchant/wallet/transactions", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, `{"transactions":[{"type":"fund","amount":12.5,"source":"bank"}]}`)
	})
	mux.HandleFunc("POST /wallet/deposit", func(w http.ResponseWriter, r *http.Request) {
		amount(r)
		reply(w, http.StatusOK, `{"message":"Deposit successful","balance":3}`)
	})
	mux.HandleFunc("GET /wallet/wallets", func(w http.ResponseWriter, _ *http.Request) {
		reply(w, http.StatusOK, `{"wallet":{"balance":3,"virtual_cards":[{"card_number":"4000123412341234","expiration_date":"12/29","status":"active"}]}}`)
	})
	mux.HandleFunc("POST /merchant/create-bluescan-app", func(w http.ResponseWriter, r *http.Request) {
		var req models.BlueScanRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "MER-1", req.MerchantID)
		assert.Equal(t, "BR-1", req.ExtID)
		assert.Equal(t, "Kiosk", req.App.Name)
		reply(w, http.StatusCreated, `{"message":"BlueScan app created","bluescan_app_id":"bs-1","reference":"REF-1","state":"PENDING"}`)
	})
	mux.HandleFunc("GET /merchant/list-bluescan-apps/{m}/{b}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "MER-1", r.PathValue("m"))
		reply(w, http.StatusOK, `{"data":[{"id":"bs-1","name":"Kiosk","type":"POS","state":"PENDING"}]}`)
	})
	mux.HandleFunc("PUT /merchant/update-bluescan-app/{m}/branches/{b}/bluescan_apps/{app}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bs-1", r.PathValue("app"))
		reply(w, http.StatusOK, `{"message":"BlueScan app updated"}`)
	})
	return mux
}

func TestApp_WalletAndBlueScanFlow(t *testing.T) {
	var amounts []models.AmountRequest
	srv := httptest.NewServer(walletBackend(t, &amounts))
	defer srv.Close()

	capturePrintln(t)
	defer stubPassword(t, []byte("secret"))()

	script := strings.Join([]string{
		"login", "ada@example.org",
		"addwallet",
		"fund", "12.50",
		"withdraw", "100",
		"wallethistory",
		"deposit", "3", "top up",
		"cards",
		"addbluescan", "Kiosk", "POS", "",
		"bluescans",
		"updatebluescan name=Counter",
		"exit",
	}, "\n") + "\n"
	a, store, out := newIntegrationApp(t, srv.URL, script)
	ctx := context.Background()
	require.NoError(t, store.SetMany(ctx, map[storage.Key]string{
		storage.KeyMerchantExtID: "MER-1",
		storage.KeyBranchExtID:   "BR-1",
	}))
	a.Run(ctx)

	got := out.String()
	assert.Contains(t, got, "[OK] Wallet created")
	assert.Contains(t, got, "[OK] Wallet funded")
	assert.Contains(t, got, "12.50")
	assert.Contains(t, got, "[ERROR] withdraw: server rejected request (400): Insufficient balance")
	assert.Contains(t, got, "bank")
	assert.Contains(t, got, "[OK] Deposit successful")
	assert.Contains(t, got, "************1234")
	assert.NotContains(t, got, "4000123412341234")
	assert.Contains(t, got, "[OK] BlueScan app created")
	assert.Contains(t, got, "[OK] BlueScan app updated")
	assert.True(t, a.isLoggedIn(), "a rejected withdrawal keeps the session")

	require.Len(t, amounts, 2)
	assert.Equal(t, 12.5, amounts[0].Amount)
	assert.Equal(t, models.AmountRequest{Amount: 3, Description: "top up"}, amounts[1])

	id, ok, err := store.Get(ctx, storage.KeyBlueScanID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bs-1", id)
}

func TestDecimal(t *testing.T) {
	for _, in := range []string{"0", "-1", "abc", "NaN"} {
		a, _ := newTestApp(&fakeAuth{}, in+"\n")
		_, err := a.decimal("Amount")
		assert.Error(t, err, in)
	}

	a, _ := newTestApp(&fakeAuth{}, "7.25\n")
	v, err := a.decimal("Amount")
	require.NoError(t, err)
	assert.Equal(t, 7.25, v)
}

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "****5678", maskCard("12345678"))
	assert.Equal(t, "123", maskCard("123"))
}
