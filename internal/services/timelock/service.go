package timelock

import (
	"context"
	"math/big"
	"time"

	"sentinel/internal/chain"
	"sentinel/internal/contracts"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/nonce"
	"sentinel/internal/repositories"
	"sentinel/internal/telemetry"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Deps are the collaborators of the workflow. Contract and Signer may be nil:
// a nil Contract means the ABI failed to load, a nil Signer means read-only mode.
type Deps struct {
	Contract    *contracts.Timelock
	ContractErr error
	Dialer      chain.Dialer
	Signer      TxSigner
	Nonces      nonce.Allocator
	Audit       repositories.SubmissionRepository
	Metrics     MetricsCollector
	Logger      *zap.Logger
}

type service struct {
	cfg         Config
	contract    *contracts.Timelock
	contractErr error
	dialer      chain.Dialer
	signer      TxSigner
	nonces      nonce.Allocator
	audit       repositories.SubmissionRepository
	metrics     MetricsCollector
	log         *zap.Logger
}

// NewService creates a new timelock workflow service
func NewService(cfg Config, deps Deps) Service {
	if deps.Dialer == nil {
		panic("dialer is required")
	}
	if cfg.ChainID == nil {
		cfg.ChainID = big.NewInt(1)
	}
	if cfg.GasLimit == 0 {
		cfg.GasLimit = DefaultGasLimit
	}
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = DefaultStepTimeout
	}
	if deps.Nonces == nil {
		deps.Nonces = nonce.NewLocal()
	}
	if deps.Audit == nil {
		deps.Audit = repositories.NoopSubmissionRepository{}
	}
	if deps.Metrics == nil {
		deps.Metrics = &NoopMetricsCollector{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		cfg:         cfg,
		contract:    deps.Contract,
		contractErr: deps.ContractErr,
		dialer:      deps.Dialer,
		signer:      deps.Signer,
		nonces:      deps.Nonces,
		audit:       deps.Audit,
		metrics:     deps.Metrics,
		log:         deps.Logger.Named("timelock"),
	}
}

func (s *service) ReadOnly() bool {
	return s.signer == nil
}

// ValidateRequest rejects a request before any I/O takes place.
func ValidateRequest(req ExtendRequest) error {
	if req.VaultID == 0 {
		return apperrors.ErrMissingVaultID
	}
	if req.AdditionalDays < 0 {
		return apperrors.ErrInvalidDays
	}
	return nil
}

func (s *service) ExtendTimelock(ctx context.Context, req ExtendRequest) (*ExtendResult, error) {
	if err := ValidateRequest(req); err != nil {
		s.metrics.RecordError(OperationExtend, string(apperrors.KindValidation))
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "timelock.extend", trace.WithAttributes(
		attribute.Int64("vault_id", int64(req.VaultID)),
		attribute.Int64("additional_days", req.AdditionalDays),
	))
	defer span.End()

	start := time.Now()
	rec := &models.Submission{
		VaultID:        req.VaultID,
		AdditionalDays: uint64(req.AdditionalDays),
		Metadata: models.JSON{
			"chain_id":  s.cfg.ChainID.String(),
			"gas_limit": s.cfg.GasLimit,
			"contract":  s.cfg.ContractAddress.Hex(),
		},
	}

	res, err := s.extend(ctx, req, rec)

	s.metrics.RecordOperationDuration(OperationExtend, time.Since(start))
	if err != nil {
		kind := apperrors.KindOf(err)
		rec.Status = models.SubmissionStatusFailed
		rec.ErrorKind = string(kind)
		rec.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		s.metrics.RecordError(OperationExtend, string(kind))
		s.metrics.RecordOperationResult(OperationExtend, ResultFailure)
		s.log.Warn("timelock extension failed",
			zap.Uint64("vault_id", req.VaultID),
			zap.Int64("additional_days", req.AdditionalDays),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	} else {
		rec.Status = models.SubmissionStatusSubmitted
		rec.TxHash = res.TransactionHash.Hex()
		span.SetAttributes(attribute.String("tx_hash", rec.TxHash))
		s.metrics.RecordOperationResult(OperationExtend, ResultSuccess)
		s.log.Info("timelock extension submitted",
			zap.Uint64("vault_id", req.VaultID),
			zap.Int64("additional_days", req.AdditionalDays),
			zap.Uint64("nonce", res.Nonce),
			zap.String("tx_hash", rec.TxHash),
		)
	}

	if auditErr := s.audit.Create(ctx, rec); auditErr != nil {
		s.log.Warn("failed to record submission", zap.Error(auditErr))
	}
	return res, err
}

func (s *service) extend(ctx context.Context, req ExtendRequest, rec *models.Submission) (*ExtendResult, error) {
	if s.contract == nil {
		return nil, apperrors.Connectivity(apperrors.ErrInitFailed.Code, apperrors.ErrInitFailed.Message, s.contractErr)
	}
	if s.cfg.ContractAddress == (common.Address{}) {
		return nil, apperrors.Connectivity(apperrors.ErrInitFailed.Code, apperrors.ErrInitFailed.Message, ErrNoContractAddress)
	}

	backend, err := s.dialer.Dial(ctx)
	if err != nil {
		return nil, apperrors.Connectivity(apperrors.ErrInitFailed.Code, apperrors.ErrInitFailed.Message, err)
	}
	defer backend.Close()

	if s.signer == nil {
		return nil, apperrors.ErrReadOnly
	}
	from := s.signer.Address()
	rec.Sender = from.Hex()

	lease, err := s.nonces.Acquire(ctx, from)
	if err != nil {
		return nil, apperrors.Connectivity("NONCE_LOCK_FAILED", "failed to reserve signing account", err)
	}
	defer lease.Release(ctx)

	// The lock may expire after its TTL; nothing guarded by it may outlive that.
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StepTimeout)
	defer cancel()

	chainNonce, err := backend.PendingNonce(ctx, from)
	if err != nil {
		return nil, apperrors.Connectivity("CHAIN_READ_FAILED", "failed to read account nonce", err)
	}
	txNonce, err := lease.Next(ctx, chainNonce)
	if err != nil {
		return nil, apperrors.Connectivity("NONCE_LOCK_FAILED", "failed to allocate nonce", err)
	}
	rec.Nonce = &txNonce

	gasPrice, err := backend.GasPrice(ctx)
	if err != nil {
		return nil, apperrors.Connectivity("CHAIN_READ_FAILED", "failed to read gas price", err)
	}
	rec.GasPrice = gasPrice.String()

	tx, err := BuildExtendTx(BuildParams{
		Contract:       s.contract,
		To:             s.cfg.ContractAddress,
		Nonce:          txNonce,
		GasLimit:       s.cfg.GasLimit,
		GasPrice:       gasPrice,
		VaultID:        req.VaultID,
		AdditionalDays: req.AdditionalDays,
	})
	if err != nil {
		return nil, apperrors.Connectivity("ENCODE_FAILED", "failed to build transaction", err)
	}

	signed, err := s.signer.SignTx(tx, s.cfg.ChainID)
	if err != nil {
		return nil, apperrors.Signing("SIGN_FAILED", "failed to sign transaction", err)
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, apperrors.Signing("SIGN_FAILED", "failed to encode signed transaction", err)
	}

	hash, err := backend.SubmitRaw(ctx, raw)
	if err != nil {
		return nil, apperrors.Submission("REJECTED", "transaction submission failed", err)
	}
	if err := lease.Commit(ctx, txNonce); err != nil {
		// The transaction is already in the pool; the next call falls back to the node's count.
		s.log.Warn("failed to commit nonce", zap.Uint64("nonce", txNonce), zap.Error(err))
	}

	return &ExtendResult{
		TransactionHash: hash,
		VaultID:         req.VaultID,
		AdditionalDays:  req.AdditionalDays,
		Nonce:           txNonce,
		Sender:          from.Hex(),
	}, nil
}
