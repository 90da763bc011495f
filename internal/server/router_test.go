package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet-txflow/internal/handler"
	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/chain"
	"wallet-txflow/internal/service/fee"
	"wallet-txflow/pkg/config"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/logger"
	"wallet-txflow/pkg/validator"
)

const (
	alice = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	bob   = "0x8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48"
	msig  = "0x1111111111111111111111111111111111111111111111111111111111111111"
)

type stubOracle struct {
	fee string
	err error
}

func (s stubOracle) Fee(context.Context, model.Chain, model.Transaction) (string, error) {
	return s.fee, s.err
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type fakeRecorder struct {
	subs []model.Submission
	err  error
}

func (f *fakeRecorder) Submit(_ context.Context, sub model.Submission) error {
	if f.err != nil {
		return f.err
	}
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeRecorder) ListPending(_ context.Context, chainID, accountID string) ([]model.MultisigTransaction, error) {
	var rows []model.MultisigTransaction
	for _, sub := range f.subs {
		for _, rec := range sub.MultisigTxs {
			if string(rec.ChainID) == chainID && rec.AccountID == accountID {
				rows = append(rows, model.NewMultisigTransaction(rec, sub.Description))
			}
		}
	}
	return rows, nil
}

func newTestRouter(t *testing.T, oracle fee.FeeOracle) *gin.Engine {
	return newTestRouterWith(t, oracle, nil)
}

func newTestRouterWith(t *testing.T, oracle fee.FeeOracle, rec *fakeRecorder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.Init())

	registry, err := chain.NewRegistry([]config.ChainConfig{{
		ChainID:       config.PolkadotChainID,
		Name:          "Polkadot",
		DepositBase:   "200880000000",
		DepositFactor: "320000000",
	}})
	require.NoError(t, err)

	quoter := fee.NewQuoter(oracle, fee.ChainDepositOracle{}, 0)
	h := Handlers{
		Transaction: handler.NewTransactionHandler(registry, quoter),
		Multisig:    handler.NewMultisigHandler(registry),
	}
	if rec != nil {
		h.Submission = handler.NewSubmissionHandler(registry, rec, rec)
	}
	return NewHTTPRouter(h)
}

func post(t *testing.T, r *gin.Engine, path string, body interface{}) envelope {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, stubOracle{fee: "1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"UP"`)
}

func composeBody() map[string]interface{} {
	return map[string]interface{}{
		"chain_id": "polkadot",
		"account": map[string]interface{}{
			"accountId": msig, "type": "multisig", "threshold": 2,
			"signatories": []map[string]string{{"accountId": alice}, {"accountId": bob}},
		},
		"accounts": []map[string]interface{}{
			{"accountId": bob, "type": "base", "walletId": "w1"},
		},
		"wallets": []map[string]string{{"id": "w1", "type": "polkadot_vault"}},
		"transactions": []map[string]interface{}{
			{"chainId": config.PolkadotChainID, "address": msig, "type": "set_payee", "args": map[string]string{}},
		},
		"with_fee": true,
	}
}

func TestComposeMultisigSetPayee(t *testing.T) {
	r := newTestRouter(t, stubOracle{fee: "156000000"})
	env := post(t, r, "/api/v1/transactions/compose", composeBody())
	require.Equal(t, 0, env.Code, env.Msg)

	var data struct {
		TxWrappers []struct {
			Kind string `json:"kind"`
		} `json:"tx_wrappers"`
		Transactions []model.WrappedTransaction `json:"transactions"`
		Fee          model.FeeData              `json:"fee"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	require.Len(t, data.TxWrappers, 1)
	assert.Equal(t, "multisig", data.TxWrappers[0].Kind)
	require.Len(t, data.Transactions, 1)
	assert.Equal(t, model.TransactionTypeMultisigAsMulti, data.Transactions[0].WrappedTx.Type)
	require.NotNil(t, data.Transactions[0].MultisigTx)
	assert.Equal(t, "0x070700", data.Transactions[0].MultisigTx.CallData)
	assert.Equal(t, model.FeeData{Fee: "156000000", TotalFee: "156000000", MultisigDeposit: "201520000000"}, data.Fee)
}

func TestComposeCannotSign(t *testing.T) {
	r := newTestRouter(t, stubOracle{fee: "1"})
	body := composeBody()
	body["accounts"] = []map[string]interface{}{}

	env := post(t, r, "/api/v1/transactions/compose", body)
	assert.Equal(t, errno.ErrCannotSign.Code, env.Code)
}

func TestComposeInvalidMultisigIsEnvelope(t *testing.T) {
	// development 日志在 DPanic 时会 panic，非法 multisig 必须在此之前被拒绝
	logger.Init("development")
	t.Cleanup(func() { logger.Log = zap.NewNop() })

	r := newTestRouter(t, stubOracle{fee: "1"})
	body := composeBody()
	account := body["account"].(map[string]interface{})
	account["threshold"] = 1

	env := post(t, r, "/api/v1/transactions/compose", body)
	assert.Equal(t, errno.ErrInvalidMultisig.Code, env.Code)
}

func TestComposeBindError(t *testing.T) {
	r := newTestRouter(t, stubOracle{fee: "1"})
	env := post(t, r, "/api/v1/transactions/compose", map[string]interface{}{"chain_id": "polkadot"})
	assert.Equal(t, errno.ErrBind.Code, env.Code)
}

func TestFeeDegradesToZero(t *testing.T) {
	r := newTestRouter(t, stubOracle{err: errors.New("rpc down")})
	env := post(t, r, "/api/v1/transactions/fee", map[string]interface{}{
		"chain_id":    config.PolkadotChainID,
		"transaction": map[string]interface{}{"address": alice, "type": "chill", "args": map[string]string{}},
		"count":       3,
	})
	require.Equal(t, 0, env.Code)

	var data struct {
		Fee      model.FeeData `json:"fee"`
		FeeError string        `json:"fee_error"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "0", data.Fee.TotalFee)
	assert.NotEmpty(t, data.FeeError)
}

func TestMultisigAccount(t *testing.T) {
	r := newTestRouter(t, stubOracle{fee: "1"})

	env := post(t, r, "/api/v1/multisig/account", map[string]interface{}{
		"chain_id":    "polkadot",
		"signatories": []string{alice, bob},
		"threshold":   2,
	})
	require.Equal(t, 0, env.Code, env.Msg)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data["account_id"], 66)
	assert.NotEmpty(t, data["address"])

	env = post(t, r, "/api/v1/multisig/account", map[string]interface{}{
		"signatories": []string{alice, "bogus!"},
		"threshold":   2,
	})
	assert.Equal(t, errno.ErrBind.Code, env.Code)

	env = post(t, r, "/api/v1/multisig/account", map[string]interface{}{
		"signatories": []string{alice, bob},
		"threshold":   3,
	})
	assert.Equal(t, errno.ErrBind.Code, env.Code)
}

func TestSubmitAndListPending(t *testing.T) {
	rec := &fakeRecorder{}
	r := newTestRouterWith(t, stubOracle{fee: "1"}, rec)

	env := post(t, r, "/api/v1/transactions/compose", composeBody())
	require.Equal(t, 0, env.Code, env.Msg)
	var composed struct {
		Transactions []model.WrappedTransaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &composed))
	require.Len(t, composed.Transactions, 1)
	wrapped := composed.Transactions[0]

	env = post(t, r, "/api/v1/transactions/submit", model.Submission{
		ChainID:     "polkadot",
		Account:     model.Account{AccountID: msig, Type: model.AccountTypeMultisig},
		Description: "set payee",
		CoreTxs:     []model.Transaction{wrapped.CoreTx},
		WrappedTxs:  []model.Transaction{wrapped.WrappedTx},
		MultisigTxs: []model.MultisigTxRecord{*wrapped.MultisigTx},
	})
	require.Equal(t, 0, env.Code, env.Msg)
	require.Len(t, rec.subs, 1)
	assert.Equal(t, model.ChainID(config.PolkadotChainID), rec.subs[0].ChainID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/multisig/pending?chain_id=polkadot&account="+msig, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 0, list.Code, list.Msg)
	var data struct {
		Items []model.MultisigTransaction `json:"items"`
	}
	require.NoError(t, json.Unmarshal(list.Data, &data))
	require.Len(t, data.Items, 1)
	assert.Equal(t, wrapped.MultisigTx.CallHash, data.Items[0].CallHash)
	assert.Equal(t, model.MultisigStatusSigning, data.Items[0].Status)
}

func TestSubmitRoutesNeedRecorder(t *testing.T) {
	r := newTestRouter(t, stubOracle{fee: "1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/transactions/submit", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
