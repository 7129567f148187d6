package mock

import "github.com/klever-io/klv-txparams-go/txparams"

// ErrorReporterStub -
type ErrorReporterStub struct {
	ReportErrorCalled func(code txparams.ErrorCode, message string)
}

// ReportError -
func (stub *ErrorReporterStub) ReportError(code txparams.ErrorCode, message string) {
	if stub.ReportErrorCalled != nil {
		stub.ReportErrorCalled(code, message)
	}
}

// IsInterfaceNil -
func (stub *ErrorReporterStub) IsInterfaceNil() bool {
	return stub == nil
}
