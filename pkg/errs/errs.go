// Package errs defines the error taxonomy shared by every SDK manager.
// Each public SDK operation fails with exactly one *Error carrying a stable
// machine-readable code; raw transport or library errors never cross a
// manager boundary unwrapped.
package errs

import "fmt"

// Code identifies an error category. The set is closed: callers can branch on
// these values without worrying about new, unexported categories appearing.
type Code string

const (
	CodeInvalidAddress      Code = "INVALID_ADDRESS"
	CodeInvalidAmount       Code = "INVALID_AMOUNT"
	CodeInsufficientBalance Code = "INSUFFICIENT_BALANCE"
	CodeSignerRequired      Code = "SIGNER_REQUIRED"
	CodeTransactionFailed   Code = "TRANSACTION_FAILED"
	CodeNotFound            Code = "NOT_FOUND"
	CodeNetworkError        Code = "NETWORK_ERROR"
	CodeContractError       Code = "CONTRACT_ERROR"
	CodeNotImplemented      Code = "NOT_IMPLEMENTED"
)

// Error is the taxonomy error. Message is human-readable, Code is stable for
// programmatic handling, and Data holds the structured payload described per
// category (required/available amounts, tx hash, etc). Data must never contain
// signing material.
type Error struct {
	Code    Code
	Message string
	Data    map[string]any
	cause   error
}

// Error implements the error interface, rendering the code, message and the
// underlying cause when present.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a taxonomy error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Is reports whether err is a taxonomy error with the given code.
func Is(err error, code Code) bool {
	e := AsError(err)
	return e != nil && e.Code == code
}

// AsError returns err as *Error if it is one (directly, not via Unwrap),
// or nil otherwise.
func AsError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return nil
}

// InvalidAddress reports a syntactically invalid account or contract address.
func InvalidAddress(address string) *Error {
	return &Error{
		Code:    CodeInvalidAddress,
		Message: fmt.Sprintf("invalid address %q", address),
		Data:    map[string]any{"address": address},
	}
}

// InvalidAmount reports a zero, negative or unparsable amount. Raised before
// any network interaction.
func InvalidAmount(amount string) *Error {
	return &Error{
		Code:    CodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %q", amount),
		Data:    map[string]any{"amount": amount},
	}
}

// InsufficientBalance reports that required exceeds available. Both values are
// base-unit integer strings.
func InsufficientBalance(required, available string) *Error {
	return &Error{
		Code:    CodeInsufficientBalance,
		Message: fmt.Sprintf("insufficient balance: required %s, available %s", required, available),
		Data:    map[string]any{"required": required, "available": available},
	}
}

// SignerRequired reports that a state-mutating operation was invoked on a
// manager with no signing identity configured.
func SignerRequired(operation string) *Error {
	return &Error{
		Code:    CodeSignerRequired,
		Message: fmt.Sprintf("operation %s requires a configured signer", operation),
		Data:    map[string]any{"operation": operation},
	}
}

// TransactionFailed reports an on-chain execution revert or a lost transaction.
func TransactionFailed(hash, reason string, cause error) *Error {
	return &Error{
		Code:    CodeTransactionFailed,
		Message: fmt.Sprintf("transaction %s failed: %s", hash, reason),
		Data:    map[string]any{"hash": hash, "reason": reason},
		cause:   cause,
	}
}

// NotFound reports a lookup by identifier that returned nothing.
func NotFound(kind, id string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", kind, id),
		Data:    map[string]any{"id": id},
	}
}

// NetworkError wraps a failed transport/RPC call. Use Network to apply the
// pass-through rule automatically.
func NetworkError(message string, cause error) *Error {
	e := &Error{
		Code:    CodeNetworkError,
		Message: message,
		cause:   cause,
	}
	if cause != nil {
		e.Data = map[string]any{"originalError": cause.Error()}
	}
	return e
}

// ContractError reports a contract-level call that reverted with a reason.
func ContractError(method, reason string, cause error) *Error {
	return &Error{
		Code:    CodeContractError,
		Message: fmt.Sprintf("contract call %s failed: %s", method, reason),
		Data:    map[string]any{"method": method, "reason": reason},
		cause:   cause,
	}
}

// NotImplemented marks an operation that has no on-chain contract behind it.
func NotImplemented(operation string) *Error {
	return &Error{
		Code:    CodeNotImplemented,
		Message: fmt.Sprintf("%s is not implemented", operation),
		Data:    map[string]any{"operation": operation},
	}
}

// Network reclassifies err as NETWORK_ERROR unless it already belongs to the
// taxonomy, in which case it is returned unchanged. This is the single wrap
// point managers use at their boundary, so taxonomy errors are never wrapped
// twice and never lose information.
func Network(message string, err error) error {
	if err == nil {
		return nil
	}
	if e := AsError(err); e != nil {
		return e
	}
	return NetworkError(message, err)
}

// Contract reclassifies err as CONTRACT_ERROR for the given method unless it
// is already a taxonomy error.
func Contract(method string, err error) error {
	if err == nil {
		return nil
	}
	if e := AsError(err); e != nil {
		return e
	}
	return ContractError(method, err.Error(), err)
}
