// Package contracts holds the parsed ABI of the timelock vault contract.
package contracts

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// MethodExtendUnlockTime is the contract call the workflow submits.
const MethodExtendUnlockTime = "extendUnlockTime"

// Timelock is read-only after Load and safe to share between requests.
type Timelock struct {
	abi abi.ABI
}

// Load reads the JSON ABI at path.
func Load(path string) (*Timelock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open contract ABI %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// ParseString is Parse over an in-memory ABI document.
func ParseString(doc string) (*Timelock, error) {
	return Parse(strings.NewReader(doc))
}

// Parse decodes an ABI document and checks that it exposes extendUnlockTime.
func Parse(r io.Reader) (*Timelock, error) {
	parsed, err := abi.JSON(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}
	if _, ok := parsed.Methods[MethodExtendUnlockTime]; !ok {
		return nil, fmt.Errorf("contract ABI has no %s method", MethodExtendUnlockTime)
	}
	return &Timelock{abi: parsed}, nil
}

// PackExtendUnlockTime returns the calldata for extendUnlockTime(vaultID, additionalDays).
func (t *Timelock) PackExtendUnlockTime(vaultID, additionalDays *big.Int) ([]byte, error) {
	data, err := t.abi.Pack(MethodExtendUnlockTime, vaultID, additionalDays)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", MethodExtendUnlockTime, err)
	}
	return data, nil
}
