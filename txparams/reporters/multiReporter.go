package reporters

import (
	"fmt"

	"github.com/klever-io/klv-txparams-go/txparams"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

type multiReporter struct {
	reporters []txparams.ErrorReporter
}

// NewMultiReporter creates a reporter that forwards each coded error to all the provided reporters
func NewMultiReporter(reporters ...txparams.ErrorReporter) (*multiReporter, error) {
	for idx, reporter := range reporters {
		if check.IfNil(reporter) {
			return nil, fmt.Errorf("%w, index %d", errNilErrorReporter, idx)
		}
	}

	return &multiReporter{
		reporters: reporters,
	}, nil
}

// ReportError forwards the coded error
func (reporter *multiReporter) ReportError(code txparams.ErrorCode, message string) {
	for _, r := range reporter.reporters {
		r.ReportError(code, message)
	}
}

// IsInterfaceNil returns true if there is no value under the interface
func (reporter *multiReporter) IsInterfaceNil() bool {
	return reporter == nil
}
