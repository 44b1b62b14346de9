package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// History errors (100-199)
	ErrCodeInsufficientHistory ErrorCode = 100
	ErrCodeEmptyHistory        ErrorCode = 101
	ErrCodeUnorderedHistory    ErrorCode = 102

	// Indicator errors (200-299)
	ErrCodeIndicatorCalculation ErrorCode = 200
	ErrCodeMissingIndicator     ErrorCode = 201

	// Catalog/strategy errors (300-399)
	ErrCodeUnknownStrategy   ErrorCode = 300
	ErrCodeCatalogLoadFailed ErrorCode = 301
	ErrCodeCatalogInvalid    ErrorCode = 302

	// Signal validation errors (400-499)
	ErrCodeInvalidSignalFormat ErrorCode = 400
	ErrCodeSideMismatch        ErrorCode = 401
	ErrCodeStrengthOutOfRange  ErrorCode = 402

	// Parameter errors (500-599)
	ErrCodeParameterOutOfRange  ErrorCode = 500
	ErrCodeUnknownParameter     ErrorCode = 501
	ErrCodeInvalidEngineVersion ErrorCode = 502

	// Run errors (600-699)
	ErrCodeRunNotFound       ErrorCode = 600
	ErrCodeRunAborted        ErrorCode = 601
	ErrCodeRunCompleted      ErrorCode = 602
	ErrCodeInvalidRunRequest ErrorCode = 603

	// Store errors (700-799)
	ErrCodeStoreUnavailable ErrorCode = 700
	ErrCodeQueryFailed      ErrorCode = 701
	ErrCodeUpsertFailed     ErrorCode = 702
	ErrCodeNotFound         ErrorCode = 703

	// Provider errors (800-899)
	ErrCodeProviderFailed ErrorCode = 800
	ErrCodeNoData         ErrorCode = 801
)
