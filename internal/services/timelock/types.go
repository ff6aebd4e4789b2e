package timelock

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ExtendRequest asks to push a vault's unlock time forward. A zero VaultID is
// treated as missing.
type ExtendRequest struct {
	VaultID        uint64
	AdditionalDays int64
}

// ExtendResult reports a transaction accepted into the node's pool. It has not
// necessarily been included in a block.
type ExtendResult struct {
	TransactionHash common.Hash `json:"transaction_hash"`
	VaultID         uint64      `json:"vault_id"`
	AdditionalDays  int64       `json:"additional_days"`
	Nonce           uint64      `json:"nonce"`
	Sender          string      `json:"sender"`
}

// Message is the human readable summary returned to HTTP callers.
func (r *ExtendResult) Message() string {
	return fmt.Sprintf("Extended timelock for vault %d by %d days", r.VaultID, r.AdditionalDays)
}

// Config is the immutable chain-side configuration of the workflow.
type Config struct {
	ContractAddress common.Address
	ChainID         *big.Int
	GasLimit        uint64
	// StepTimeout bounds everything done while the signing account is locked.
	StepTimeout time.Duration
}

// MetricsCollector defines the interface for collecting workflow metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordError(operation, errType string)
}
