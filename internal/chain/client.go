// Package chain wraps a connection to an EVM node. It exposes only what the
// timelock workflow needs: a liveness probe, the reads used to build a
// transaction and the raw broadcast.
package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// Backend is the set of chain operations consumed by the workflow.
type Backend interface {
	BlockNumber(ctx context.Context) (uint64, error)
	PendingNonce(ctx context.Context, account common.Address) (uint64, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	SubmitRaw(ctx context.Context, signed []byte) (common.Hash, error)
	Close()
}

// Dialer hands out a fresh, probed Backend per call.
type Dialer interface {
	Dial(ctx context.Context) (Backend, error)
}

// Client is the go-ethereum backed Backend.
type Client struct {
	eth *ethclient.Client
}

// NewClient wraps an existing ethclient without probing it.
func NewClient(eth *ethclient.Client) *Client {
	return &Client{eth: eth}
}

// Dial connects to endpoint and probes it with a block number request. A node
// that does not answer the probe is reported here instead of on first use.
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	eth, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to node %s", endpoint)
	}
	c := NewClient(eth)
	if _, err := c.BlockNumber(ctx); err != nil {
		c.Close()
		return nil, errors.Wrap(err, "node liveness probe failed")
	}
	return c, nil
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.eth.BlockNumber(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get block number")
	}
	return n, nil
}

// PendingNonce returns the next sequence number for account, counting
// transactions still in the node's pool. The value is only valid for the
// submission that immediately follows.
func (c *Client) PendingNonce(ctx context.Context, account common.Address) (uint64, error) {
	n, err := c.eth.PendingNonceAt(ctx, account)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get nonce for %s", account.Hex())
	}
	return n, nil
}

// GasPrice is queried fresh on every call.
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	p, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get gas price")
	}
	return p, nil
}

// SubmitRaw broadcasts an RLP/typed-envelope encoded signed transaction and
// returns the hash the node assigned. Acceptance into the pool is not inclusion.
func (c *Client) SubmitRaw(ctx context.Context, signed []byte) (common.Hash, error) {
	var hash common.Hash
	if err := c.eth.Client().CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(signed)); err != nil {
		return common.Hash{}, errors.Wrap(err, "node rejected transaction")
	}
	return hash, nil
}

func (c *Client) Close() {
	c.eth.Close()
}

// EndpointDialer dials a fixed endpoint on every call.
type EndpointDialer struct {
	Endpoint string
}

func (d EndpointDialer) Dial(ctx context.Context) (Backend, error) {
	c, err := Dial(ctx, d.Endpoint)
	if err != nil {
		return nil, err
	}
	return c, nil
}
