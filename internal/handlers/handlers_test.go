package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sentinel/internal/chain"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/services/risk"
	"sentinel/internal/services/timelock"
	"sentinel/internal/utils/validation"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTimelockService struct {
	mock.Mock
}

func (m *MockTimelockService) ExtendTimelock(ctx context.Context, req timelock.ExtendRequest) (*timelock.ExtendResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timelock.ExtendResult), args.Error(1)
}

func (m *MockTimelockService) ReadOnly() bool {
	return m.Called().Bool(0)
}

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, s *models.Submission) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSubmissionRepository) ListRecent(ctx context.Context, limit int) ([]models.Submission, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func timelockApp(svc timelock.Service) *fiber.App {
	app := fiber.New()
	app.Post("/api/extend_timelock", NewTimelockHandler(svc).ExtendTimelock)
	return app
}

func TestExtendTimelock_Success(t *testing.T) {
	svc := new(MockTimelockService)
	hash := common.HexToHash("0xabc123")
	svc.On("ExtendTimelock", mock.Anything, timelock.ExtendRequest{VaultID: 7, AdditionalDays: 30}).
		Return(&timelock.ExtendResult{TransactionHash: hash, VaultID: 7, AdditionalDays: 30}, nil)

	status, body := doJSON(t, timelockApp(svc), http.MethodPost, "/api/extend_timelock", `{"vault_id": 7, "additional_days": 30}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, hash.Hex(), body["transaction_hash"])
	assert.Equal(t, "Extended timelock for vault 7 by 30 days", body["message"])
	svc.AssertExpectations(t)
}

func TestExtendTimelock_NumericStrings(t *testing.T) {
	svc := new(MockTimelockService)
	svc.On("ExtendTimelock", mock.Anything, timelock.ExtendRequest{VaultID: 3, AdditionalDays: 14}).
		Return(&timelock.ExtendResult{VaultID: 3, AdditionalDays: 14}, nil)

	status, _ := doJSON(t, timelockApp(svc), http.MethodPost, "/api/extend_timelock", `{"vault_id": "3", "additional_days": "14"}`)

	assert.Equal(t, http.StatusOK, status)
	svc.AssertExpectations(t)
}

func TestExtendTimelock_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `vault_id=1`},
		{"vault id not a number", `{"vault_id": "abc", "additional_days": 1}`},
		{"negative vault id", `{"vault_id": -1, "additional_days": 1}`},
		{"fractional days", `{"vault_id": 1, "additional_days": 1.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockTimelockService)
			status, body := doJSON(t, timelockApp(svc), http.MethodPost, "/api/extend_timelock", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, body["error"])
			svc.AssertNotCalled(t, "ExtendTimelock", mock.Anything, mock.Anything)
		})
	}
}

func TestExtendTimelock_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing vault", apperrors.ErrMissingVaultID, http.StatusBadRequest, "Missing vault_id parameter"},
		{"connectivity", apperrors.Connectivity(apperrors.ErrInitFailed.Code, apperrors.ErrInitFailed.Message, errors.New("dial tcp: refused")),
			http.StatusInternalServerError, "Failed to initialize blockchain connection"},
		{"submission", apperrors.Submission("REJECTED", "transaction submission failed", errors.New("nonce too low")),
			http.StatusInternalServerError, "transaction submission failed: nonce too low"},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockTimelockService)
			svc.On("ExtendTimelock", mock.Anything, mock.Anything).Return(nil, tt.err)

			status, body := doJSON(t, timelockApp(svc), http.MethodPost, "/api/extend_timelock", `{"additional_days": 1}`)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func riskApp() *fiber.App {
	app := fiber.New()
	h := NewRiskHandler(risk.NewService(risk.StaticModel{}, nil, 0, nil), validation.New())
	app.Get("/api/risk-assessment", h.Assess)
	app.Post("/api/risk-assessment", h.Assess)
	app.Post("/api/simulate-protection", h.SimulateProtection)
	return app
}

func TestRiskAssessment(t *testing.T) {
	app := riskApp()

	status, body := doJSON(t, app, http.MethodGet, "/api/risk-assessment", "")
	assert.Equal(t, http.StatusOK, status)
	score := body["risk_score"].(map[string]interface{})
	assert.Equal(t, float64(65), score["score"])
	assert.Equal(t, "medium", score["level"])
	assert.Len(t, score["factors"], 3)
	assert.Equal(t, false, body["needs_protection"])
	assert.Equal(t, "Standard transaction ok", body["recommendation"])
	assert.NotEmpty(t, body["timestamp"])

	status, body = doJSON(t, app, http.MethodPost, "/api/risk-assessment",
		`{"address": "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", "vault_id": 1, "amount": 100}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(65), body["risk_score"].(map[string]interface{})["score"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/risk-assessment", `{"address": "not-an-address"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSimulateProtection(t *testing.T) {
	app := riskApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/simulate-protection",
		`{"vaults": [{"id": 1}, {"amount": 5}], "risk_score": 80}`)
	require.Equal(t, http.StatusOK, status)
	actions, ok := body["actions"].([]interface{})
	require.True(t, ok)
	require.Len(t, actions, 2)

	first := actions[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["vault_id"])
	assert.Equal(t, "extend_timelock", first["recommended_action"])
	assert.Equal(t, float64(100), first["confidence"])
	assert.Equal(t, "unknown", actions[1].(map[string]interface{})["vault_id"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/simulate-protection", `{"vaults": [], "risk_score": 101}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func walletApp() *fiber.App {
	app := fiber.New()
	h := NewWalletHandler(validation.New())
	app.Post("/api/wallet_data", h.GetWalletData)
	app.Post("/api/mock_wallet", h.MockWallet)
	return app
}

func TestWalletData(t *testing.T) {
	app := walletApp()

	status, body := doJSON(t, app, http.MethodPost, "/api/wallet_data", `{"address": "0xabc"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0xabc", body["address"])
	assert.Equal(t, float64(2500), body["balance"])
	assert.Equal(t, float64(1250), body["protected"])
	assert.Len(t, body["vaults"], 2)

	status, body = doJSON(t, app, http.MethodPost, "/api/wallet_data", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing wallet address", body["error"])
}

func TestMockWallet(t *testing.T) {
	status, body := doJSON(t, walletApp(), http.MethodPost, "/api/mock_wallet", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["connected"])
	assert.Equal(t, mockWalletAddress, body["address"])
	assert.Equal(t, "Ethereum Testnet", body["network"])
	assert.Equal(t, "10.5 ETH", body["balance"])
}

type stubBackend struct {
	block uint64
	err   error
}

func (b stubBackend) BlockNumber(context.Context) (uint64, error) { return b.block, b.err }
func (stubBackend) PendingNonce(context.Context, common.Address) (uint64, error) {
	return 0, nil
}
func (stubBackend) GasPrice(context.Context) (*big.Int, error)           { return big.NewInt(1), nil }
func (stubBackend) SubmitRaw(context.Context, []byte) (common.Hash, error) { return common.Hash{}, nil }
func (stubBackend) Close()                                               {}

type stubDialer struct {
	backend chain.Backend
	err     error
}

func (d stubDialer) Dial(context.Context) (chain.Backend, error) { return d.backend, d.err }

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		dialer    chain.Dialer
		status    int
		connected bool
	}{
		{"node up", stubDialer{backend: stubBackend{block: 42}}, http.StatusOK, true},
		{"no endpoint", stubDialer{err: chain.ErrNoEndpoint}, http.StatusServiceUnavailable, false},
		{"probe fails", stubDialer{backend: stubBackend{err: errors.New("timeout")}}, http.StatusServiceUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/api/health", NewHealthHandler(tt.dialer, true).HealthCheck)

			status, body := doJSON(t, app, http.MethodGet, "/api/health", "")
			assert.Equal(t, tt.status, status)
			assert.Equal(t, true, body["read_only"])
			node := body["node"].(map[string]interface{})
			assert.Equal(t, tt.connected, node["connected"])
			if tt.connected {
				assert.Equal(t, float64(42), node["block_number"])
			} else {
				assert.NotEmpty(t, node["error"])
			}
		})
	}
}

func TestListSubmissions(t *testing.T) {
	repo := new(MockSubmissionRepository)
	repo.On("ListRecent", mock.Anything, 5).Return([]models.Submission{
		{VaultID: 1, Status: models.SubmissionStatusSubmitted},
		{VaultID: 2, Status: models.SubmissionStatusFailed},
	}, nil)
	repo.On("ListRecent", mock.Anything, 50).Return(nil, errors.New("db down"))

	app := fiber.New()
	app.Get("/api/submissions", NewSubmissionHandler(repo).ListSubmissions)

	status, body := doJSON(t, app, http.MethodGet, "/api/submissions?limit=5", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["count"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/submissions", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	repo.AssertExpectations(t)
}
