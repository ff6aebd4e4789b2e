/*
Package timelock submits extendUnlockTime transactions to the timelock vault contract.

A call walks Received → Validated → Connected → Built → Signed → Submitted and
ends either pending in the node's pool or failed. Nothing is retried, and two
identical calls produce two distinct on-chain transactions.

Usage:

	svc := timelock.NewService(timelock.Config{
	    ContractAddress: common.HexToAddress(cfg.ContractAddress),
	    ChainID:         big.NewInt(cfg.ChainID),
	}, timelock.Deps{
	    Contract: contract,
	    Dialer:   chain.EndpointDialer{Endpoint: cfg.NodeEndpoint},
	    Signer:   key,
	    Nonces:   nonce.NewLocal(),
	})

	res, err := svc.ExtendTimelock(ctx, timelock.ExtendRequest{VaultID: 1, AdditionalDays: 7})

Error Handling:

Every error returned is an *errors.DomainError:
  - validation: missing vault id or negative days; no network I/O happened
  - connectivity: ABI not loaded, node unreachable, chain reads failed
  - signing: no signing key configured, or the key could not sign
  - submission: the node refused the broadcast

Concurrency:

Steps from nonce read to broadcast run under a per-account lease from the
nonce allocator, so concurrent calls from one signing account never reuse a
nonce.

Gas:

The gas limit is a fixed policy value (DefaultGasLimit unless configured). It is
not estimated; a call needing more gas fails on-chain as out of gas.
*/
package timelock
