// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError     = "error.internal"
	KeyRateLimitExceeded = "error.rate_limited"

	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"

	// Product verification
	KeyProductIDRequired         = "product.id_required"
	KeyProductInvalidID          = "product.invalid_id"
	KeyProductNotFound           = "product.not_found"
	KeyProductVerificationFailed = "product.verification_failed"

	// Stock ledger
	KeyStockMissingFields  = "stock.missing_fields"
	KeyStockInvalidAmounts = "stock.invalid_amounts"
	KeyStockUpdated        = "stock.updated"
	KeyStockUpdateFailed   = "stock.update_failed"

	// Purchase uploads
	KeyUploadMissingFields = "upload.missing_fields"
	KeyUploadSuccess       = "upload.success"
	KeyUploadFailed        = "upload.failed"
	KeyUploadTooLarge      = "upload.too_large"

	// Reports
	KeyReportMissingFields = "report.missing_fields"
	KeyReportSubmitted     = "report.submitted"
	KeyReportFailed        = "report.failed"
)
