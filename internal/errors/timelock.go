package errors

var (
	ErrMissingVaultID = &DomainError{
		Kind:    KindValidation,
		Code:    "MISSING_VAULT_ID",
		Message: "Missing vault_id parameter",
	}
	ErrInvalidDays = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_ADDITIONAL_DAYS",
		Message: "additional_days must be a non-negative integer",
	}
	ErrInitFailed = &DomainError{
		Kind:    KindConnectivity,
		Code:    "INIT_FAILED",
		Message: "Failed to initialize blockchain connection",
	}
	ErrReadOnly = &DomainError{
		Kind:    KindSigning,
		Code:    "NO_SIGNING_KEY",
		Message: "no signing key configured; service is in read-only mode",
	}
)
