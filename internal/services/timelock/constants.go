package timelock

import (
	"errors"
	"time"
)

// ErrNoContractAddress means CONTRACT_ADDRESS was unset or not a hex address.
var ErrNoContractAddress = errors.New("contract address not configured")

// DefaultStepTimeout bounds the chain calls made while an account is locked.
// It must stay below nonce.DefaultLockTTL.
const DefaultStepTimeout = 20 * time.Second

// DefaultGasLimit is the fixed gas ceiling for extendUnlockTime.
const DefaultGasLimit uint64 = 200000

// Operation names used for metrics and logs.
const (
	OperationExtend = "extend_timelock"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
