package nonce

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Local is an in-process Allocator. It is enough for a single server instance.
type Local struct {
	mu       sync.Mutex
	accounts map[common.Address]*accountState
	hintTTL  time.Duration
	now      func() time.Time
}

type accountState struct {
	sem         chan struct{}
	next        uint64
	committedAt time.Time
}

func NewLocal() *Local {
	return &Local{
		accounts: make(map[common.Address]*accountState),
		hintTTL:  DefaultHintTTL,
		now:      time.Now,
	}
}

func (l *Local) state(account common.Address) *accountState {
	l.mu.Lock()
	defer l.mu.Unlock()
	st, ok := l.accounts[account]
	if !ok {
		st = &accountState{sem: make(chan struct{}, 1)}
		l.accounts[account] = st
	}
	return st
}

func (l *Local) Acquire(ctx context.Context, account common.Address) (Lease, error) {
	st := l.state(account)
	select {
	case st.sem <- struct{}{}:
		return &localLease{l: l, st: st}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type localLease struct {
	l    *Local
	st   *accountState
	once sync.Once
}

func (l *localLease) Next(_ context.Context, chainNonce uint64) (uint64, error) {
	fresh := !l.st.committedAt.IsZero() && l.l.now().Sub(l.st.committedAt) < l.l.hintTTL
	return pick(chainNonce, l.st.next, fresh), nil
}

func (l *localLease) Commit(_ context.Context, nonce uint64) error {
	l.st.next = nonce + 1
	l.st.committedAt = l.l.now()
	return nil
}

func (l *localLease) Release(context.Context) {
	l.once.Do(func() { <-l.st.sem })
}
