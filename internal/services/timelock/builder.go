package timelock

import (
	"errors"
	"math/big"

	"sentinel/internal/contracts"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// BuildParams is everything an unsigned extendUnlockTime transaction depends on.
type BuildParams struct {
	Contract       *contracts.Timelock
	To             common.Address
	Nonce          uint64
	GasLimit       uint64
	GasPrice       *big.Int
	VaultID        uint64
	AdditionalDays int64
}

// BuildExtendTx is a pure function of its params. The chain id is bound later,
// when the transaction is signed.
func BuildExtendTx(p BuildParams) (*types.Transaction, error) {
	if p.Contract == nil {
		return nil, errors.New("contract interface is not loaded")
	}
	if p.GasPrice == nil {
		return nil, errors.New("gas price is required")
	}
	if p.AdditionalDays < 0 {
		return nil, errors.New("additional days must not be negative")
	}
	data, err := p.Contract.PackExtendUnlockTime(
		new(big.Int).SetUint64(p.VaultID),
		big.NewInt(p.AdditionalDays),
	)
	if err != nil {
		return nil, err
	}

	to := p.To
	return types.NewTx(&types.LegacyTx{
		Nonce:    p.Nonce,
		To:       &to,
		Gas:      p.GasLimit,
		GasPrice: new(big.Int).Set(p.GasPrice),
		Data:     data,
	}), nil
}
