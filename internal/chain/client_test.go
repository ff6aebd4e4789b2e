package chain

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEth serves the eth_ namespace subset used by Client.
type fakeEth struct {
	mu       sync.Mutex
	block    uint64
	nonces   map[common.Address]uint64
	gasPrice *big.Int
	sent     [][]byte
	reject   error
}

func (f *fakeEth) BlockNumber() hexutil.Uint64 {
	return hexutil.Uint64(f.block)
}

func (f *fakeEth) GasPrice() *hexutil.Big {
	return (*hexutil.Big)(f.gasPrice)
}

func (f *fakeEth) GetTransactionCount(account common.Address, block string) hexutil.Uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return hexutil.Uint64(f.nonces[account])
}

func (f *fakeEth) SendRawTransaction(data hexutil.Bytes) (common.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reject != nil {
		return common.Hash{}, f.reject
	}
	f.sent = append(f.sent, data)
	return crypto.Keccak256Hash(data), nil
}

func newInProcClient(t *testing.T, svc *fakeEth) *Client {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", svc))
	t.Cleanup(server.Stop)
	c := NewClient(ethclient.NewClient(rpc.DialInProc(server)))
	t.Cleanup(c.Close)
	return c
}

func TestClient_Reads(t *testing.T) {
	account := common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e")
	svc := &fakeEth{
		block:    19_000_000,
		nonces:   map[common.Address]uint64{account: 5},
		gasPrice: big.NewInt(10),
	}
	c := newInProcClient(t, svc)
	ctx := context.Background()

	block, err := c.BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(19_000_000), block)

	nonce, err := c.PendingNonce(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), nonce)

	price, err := c.GasPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), price.Int64())
}

func TestClient_SubmitRaw(t *testing.T) {
	svc := &fakeEth{gasPrice: big.NewInt(1)}
	c := newInProcClient(t, svc)

	raw := []byte{0xf8, 0x6b, 0x05}
	hash, err := c.SubmitRaw(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256Hash(raw), hash)
	require.Len(t, svc.sent, 1)
	assert.Equal(t, raw, svc.sent[0])
}

func TestClient_SubmitRawRejected(t *testing.T) {
	svc := &fakeEth{gasPrice: big.NewInt(1), reject: errors.New("nonce too low")}
	c := newInProcClient(t, svc)

	_, err := c.SubmitRaw(context.Background(), []byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node rejected transaction")
	assert.Contains(t, err.Error(), "nonce too low")
}

func TestDial_NoEndpoint(t *testing.T) {
	_, err := Dial(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoEndpoint)

	_, err = EndpointDialer{}.Dial(context.Background())
	assert.ErrorIs(t, err, ErrNoEndpoint)
}

func TestDial_ProbeFailsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Nothing listens on port 1; the HTTP transport dials lazily so only the probe can fail.
	c, err := Dial(ctx, "http://127.0.0.1:1")
	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node liveness probe failed")
}
