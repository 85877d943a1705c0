package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrResetTokenInvalid  ErrCode = "RESET_TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation       ErrCode = "VALIDATION_ERROR"
	ErrInvalidID        ErrCode = "INVALID_ID"
	ErrInvalidSelection ErrCode = "INVALID_SELECTION"
	ErrEmailDomain      ErrCode = "EMAIL_DOMAIN_NOT_ALLOWED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Exam-form lifecycle ───────────────────────────────────────────
	ErrNoStagedForm        ErrCode = "NO_STAGED_FORM"
	ErrStaleSession        ErrCode = "STALE_SESSION"
	ErrOrderMismatch       ErrCode = "ORDER_MISMATCH"
	ErrDuplicateOrder      ErrCode = "DUPLICATE_ORDER"
	ErrSignatureInvalid    ErrCode = "SIGNATURE_INVALID"
	ErrGateway             ErrCode = "GATEWAY_ERROR"
	ErrFormNotPending      ErrCode = "FORM_NOT_PENDING"
	ErrReceiptNotAvailable ErrCode = "RECEIPT_NOT_AVAILABLE"

	// ─── Attendance ────────────────────────────────────────────────────
	ErrAttendanceExists ErrCode = "ATTENDANCE_EXISTS"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Invalid username/college id or password."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."
	case ErrResetTokenInvalid:
		return "Password reset link is invalid or has expired."

	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid id format."
	case ErrInvalidSelection:
		return "Selected subjects are not offered for this branch and semester."
	case ErrEmailDomain:
		return "Email must belong to the college domain."

	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	case ErrNoStagedForm:
		return "No exam form details found. Please fill the exam form first."
	case ErrStaleSession:
		return "Your form details expired before payment completed. Please fill the form again."
	case ErrOrderMismatch:
		return "Payment confirmation does not match the pending order."
	case ErrDuplicateOrder:
		return "This payment has already been processed."
	case ErrSignatureInvalid:
		return "Payment verification failed."
	case ErrGateway:
		return "Could not reach the payment gateway. Please try again."
	case ErrFormNotPending:
		return "This exam form has already been decided."
	case ErrReceiptNotAvailable:
		return "Receipt not available."

	case ErrAttendanceExists:
		return "Attendance for this student and date is already recorded."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
