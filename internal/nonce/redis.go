package nonce

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultLockTTL      = 30 * time.Second
	DefaultPollInterval = 50 * time.Millisecond
	keyPrefix           = "nonce:"
)

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis is an Allocator shared by every server instance pointed at the same Redis.
type Redis struct {
	client       redis.UniversalClient
	lockTTL      time.Duration
	hintTTL      time.Duration
	pollInterval time.Duration
}

func NewRedis(client redis.UniversalClient, lockTTL time.Duration) *Redis {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &Redis{
		client:       client,
		lockTTL:      lockTTL,
		hintTTL:      DefaultHintTTL,
		pollInterval: DefaultPollInterval,
	}
}

func lockKey(account common.Address) string {
	return keyPrefix + "lock:" + strings.ToLower(account.Hex())
}

func nextKey(account common.Address) string {
	return keyPrefix + "next:" + strings.ToLower(account.Hex())
}

func (r *Redis) Acquire(ctx context.Context, account common.Address) (Lease, error) {
	token := uuid.NewString()
	key := lockKey(account)

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()
	for {
		ok, err := r.client.SetNX(ctx, key, token, r.lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to lock account %s: %w", account.Hex(), err)
		}
		if ok {
			return &redisLease{r: r, account: account, token: token}, nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

type redisLease struct {
	r       *Redis
	account common.Address
	token   string
	once    sync.Once
}

func (l *redisLease) Next(ctx context.Context, chainNonce uint64) (uint64, error) {
	raw, err := l.r.client.Get(ctx, nextKey(l.account)).Result()
	if errors.Is(err, redis.Nil) {
		return chainNonce, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read nonce for %s: %w", l.account.Hex(), err)
	}
	next, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt nonce %q for %s: %w", raw, l.account.Hex(), err)
	}
	return pick(chainNonce, next, true), nil
}

func (l *redisLease) Commit(ctx context.Context, nonce uint64) error {
	return l.r.client.Set(ctx, nextKey(l.account), strconv.FormatUint(nonce+1, 10), l.r.hintTTL).Err()
}

func (l *redisLease) Release(ctx context.Context) {
	l.once.Do(func() {
		// Release must run even if the request context is already done.
		_ = releaseScript.Run(context.WithoutCancel(ctx), l.r.client, []string{lockKey(l.account)}, l.token).Err()
	})
}
