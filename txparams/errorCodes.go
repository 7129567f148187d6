package txparams

import "fmt"

// ErrorCode identifies the call site that produced a reported error
type ErrorCode int

const (
	// CodeRecommendedNonce is reported when the recommended Safe nonce could not be fetched
	CodeRecommendedNonce ErrorCode = 616
	// CodeWalletNonce is reported when the connected account nonce could not be fetched
	CodeWalletNonce ErrorCode = 617
	// CodeGasDefaults is reported when the gas price defaults could not be refreshed
	CodeGasDefaults ErrorCode = 618
)

var codeDescriptions = map[ErrorCode]string{
	CodeRecommendedNonce: "Failed to retrieve recommended nonce",
	CodeWalletNonce:      "Failed to retrieve wallet nonce",
	CodeGasDefaults:      "Failed to retrieve gas price defaults",
}

// Description returns the human readable description of the code
func (code ErrorCode) Description() string {
	description, ok := codeDescriptions[code]
	if !ok {
		return "Unknown error"
	}

	return description
}

// CodedError is an error decorated with the code of the call site that produced it
type CodedError struct {
	Code    ErrorCode
	Message string
}

// NewCodedError creates a new CodedError instance
func NewCodedError(code ErrorCode, message string) *CodedError {
	return &CodedError{
		Code:    code,
		Message: message,
	}
}

// Error returns the formatted error message
func (ce *CodedError) Error() string {
	if len(ce.Message) == 0 {
		return fmt.Sprintf("Code %d: %s", ce.Code, ce.Code.Description())
	}

	return fmt.Sprintf("Code %d: %s (%s)", ce.Code, ce.Code.Description(), ce.Message)
}
