package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Inbound webhook (WBH) ----

// ErrUnauthorized is returned when the shared-secret header does not match.
// Terminal: nothing is persisted.
func ErrUnauthorized() *AppError {
	return New("WBH_001", "Invalid webhook authorization", http.StatusUnauthorized)
}

// ErrMalformedPayload is returned when the body carries no payment identifier.
func ErrMalformedPayload(detail string) *AppError {
	return New("WBH_002", fmt.Sprintf("Malformed webhook payload: %s", detail), http.StatusBadRequest)
}

// ---- Link resolution (LNK) ----

// ErrLinkNotFound marks an unresolvable payment id. Non-fatal to the request:
// the sub-chain is skipped and the webhook is still acknowledged.
func ErrLinkNotFound(paymentID string) *AppError {
	return New("LNK_001", fmt.Sprintf("No charge link for payment %s", paymentID), http.StatusOK)
}

// ---- Credentials (CRD) ----

// ErrCredentialNotFound means the tenant has no provider credential
// configured. A configuration error, never retried.
func ErrCredentialNotFound(tenantID string) *AppError {
	return New("CRD_001", fmt.Sprintf("No provider credential for tenant %s", tenantID), http.StatusInternalServerError)
}

// ErrCredentialRefreshFailed carries the provider's response from a failed
// token exchange.
func ErrCredentialRefreshFailed(status int, body string) *AppError {
	return New("CRD_002", fmt.Sprintf("Token exchange failed: status=%d body=%s", status, body), http.StatusBadGateway)
}

// ---- Provider query (PRV) ----

// ErrQueryFailed marks a failed payment-detail lookup at the provider.
func ErrQueryFailed(status int, body string) *AppError {
	return New("PRV_001", fmt.Sprintf("Payment query failed: status=%d body=%s", status, body), http.StatusBadGateway)
}

// ---- Notifications (NTF) ----

// ErrNotificationFailed marks a per-destination delivery failure. Non-fatal
// to sibling destinations and to the overall result.
func ErrNotificationFailed(destination string, err error) *AppError {
	return Wrap("NTF_001", fmt.Sprintf("Notification to %s failed", destination), http.StatusBadGateway, err)
}

// ---- Operator authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a WBH_002-style validation error.
func Validation(message string) *AppError {
	return New("WBH_002", message, http.StatusBadRequest)
}
