package vm

// Execute runs code as a single frame and returns its Result. It is the
// package's primary entry point: analyze, build the frame, run it, map the
// outcome.
func Execute(host Host, rev Revision, msg Message, code []byte) Result {
	return ExecuteAnalyzed(host, rev, msg, AnalyzeCode(code))
}

// ExecuteAnalyzed runs pre-analyzed code, letting a caller that executes the
// same code repeatedly (e.g. a warm contract) skip re-running AnalyzeCode.
func ExecuteAnalyzed(host Host, rev Revision, msg Message, analysis *CodeAnalysis) Result {
	return ExecuteWithConfig(host, rev, Config{}, msg, analysis)
}

// ExecuteWithConfig is Execute/ExecuteAnalyzed's extended form, for callers
// that want a Tracer attached to the frame. Config.ExtraEips is passed on to
// NewInterpreter, which does not apply it.
func ExecuteWithConfig(host Host, rev Revision, config Config, msg Message, analysis *CodeAnalysis) Result {
	contract := NewContract(&msg, analysis)
	interp := NewInterpreter(host, rev, config, host.GetTxContext(), msg)

	output, err := interp.Run(contract, msg.Input, msg.IsStatic())

	status := statusFromError(err)
	result := Result{
		Status: status,
		Output: output,
	}
	switch status {
	case Success, Revert:
		result.GasLeft = int64(contract.Gas)
	default:
		result.GasLeft = 0
		result.Output = nil
	}
	return result
}
