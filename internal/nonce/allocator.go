// Package nonce serializes transaction building per signing account and hands
// out strictly increasing nonces, even when the node reports a stale pending
// count for a transaction that was just broadcast.
package nonce

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultHintTTL is how long a committed nonce may override the node's pending
// count. A node that still reports an older count after this window has dropped
// the transaction, so its count is authoritative again.
const DefaultHintTTL = 30 * time.Second

// Allocator grants exclusive use of an account until the Lease is released.
type Allocator interface {
	Acquire(ctx context.Context, account common.Address) (Lease, error)
}

// Lease is held for the whole build/sign/submit sequence of one transaction.
type Lease interface {
	// Next returns the nonce to use given the node's pending count.
	Next(ctx context.Context, chainNonce uint64) (uint64, error)
	// Commit records nonce as broadcast. Only call it after the node accepted the transaction.
	Commit(ctx context.Context, nonce uint64) error
	// Release gives up the account. Safe to call more than once.
	Release(ctx context.Context)
}

func pick(chainNonce uint64, next uint64, fresh bool) uint64 {
	if fresh && next > chainNonce {
		return next
	}
	return chainNonce
}
