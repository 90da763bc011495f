package errno

import "errors"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Decode tries to convert an error to Errno.
// Wrapped errors (fmt.Errorf("...: %w", errno.X)) keep the code of the innermost Errno
// and the full message of the wrapping chain.
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, err.Error()
	}
	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, err.Error()
	}
	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrDatabase         = Errno{Code: 10004, Message: "Database error"}
	ErrMessageQueue     = Errno{Code: 10005, Message: "Message queue error"}
)

// Chain / account errors (30000+)
var (
	ErrChainNotFound   = Errno{Code: 30001, Message: "Chain not found"}
	ErrInvalidAddress  = Errno{Code: 30002, Message: "Invalid address"}
	ErrAccountNotFound = Errno{Code: 30003, Message: "Account not found"}
)

// Wrapper resolution errors, surfaced upstream as "cannot sign"
var (
	ErrCannotSign      = Errno{Code: 30101, Message: "No signatory of the multisig account can sign"}
	ErrProxyNotFound   = Errno{Code: 30102, Message: "Proxy account not found"}
	ErrSignerMismatch  = Errno{Code: 30103, Message: "Signatory is not a member of the multisig account"}
	ErrInvalidMultisig = Errno{Code: 30104, Message: "Invalid multisig account"}
)

// Composition precondition errors
var (
	ErrInvalidWrapper   = Errno{Code: 30201, Message: "Invalid transaction wrapper"}
	ErrUnsupportedTx    = Errno{Code: 30202, Message: "Unsupported transaction type"}
	ErrInvalidCallIndex = Errno{Code: 30203, Message: "Call index missing from chain metadata"}
)

// Fee errors
var (
	ErrFeeQuote      = Errno{Code: 30301, Message: "Failed to estimate transaction fee"}
	ErrDepositQuote  = Errno{Code: 30302, Message: "Failed to estimate multisig deposit"}
	ErrInvalidAmount = Errno{Code: 30303, Message: "Invalid amount"}
)

// Flow errors
var (
	ErrInvalidStep  = Errno{Code: 30401, Message: "Action not allowed in current step"}
	ErrFeeLoading   = Errno{Code: 30402, Message: "Fee is still loading"}
	ErrFlowNotReady = Errno{Code: 30403, Message: "Flow has no transactions to submit"}
)
