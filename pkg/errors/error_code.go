package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPositionSize  ErrorCode = 102
	ErrCodeInvalidThreshold     ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104
	ErrCodeInvalidExposure      ErrorCode = 105
	ErrCodeUnknownPattern       ErrorCode = 106
	ErrCodeInsufficientData     ErrorCode = 107

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound  ErrorCode = 200
	ErrCodeInvalidSeries ErrorCode = 201
	ErrCodeDataLoad      ErrorCode = 202

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300

	// Backtest errors (400-499)
	ErrCodeBacktestFailed   ErrorCode = 400
	ErrCodeOptimizerBounds  ErrorCode = 401
	ErrCodeCatalogTooLarge  ErrorCode = 402
	ErrCodeResultsWrite     ErrorCode = 403
	ErrCodeInvalidRankField ErrorCode = 404
)
