package timelock

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Service runs the timelock extension workflow.
type Service interface {
	ExtendTimelock(ctx context.Context, req ExtendRequest) (*ExtendResult, error)
	ReadOnly() bool
}

// TxSigner is satisfied by *signer.Signer.
type TxSigner interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}
