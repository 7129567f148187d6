package reporters

import (
	"github.com/klever-io/klv-txparams-go/txparams"
)

type logReporter struct {
	log ErrorLogger
}

// NewLogReporter creates a reporter that writes the coded errors on the provided logger
func NewLogReporter(log ErrorLogger) (*logReporter, error) {
	if log == nil {
		return nil, errNilLogger
	}

	return &logReporter{
		log: log,
	}, nil
}

// ReportError logs the coded error
func (reporter *logReporter) ReportError(code txparams.ErrorCode, message string) {
	reporter.log.Error(code.Description(), "code", int(code), "error", message)
}

// IsInterfaceNil returns true if there is no value under the interface
func (reporter *logReporter) IsInterfaceNil() bool {
	return reporter == nil
}
