package output

const (
	ExitOK           = 0
	ExitBelowMinimum = 1
)

// ComputeExitCode returns ExitBelowMinimum when fewer than minResources
// resources were collected. A minimum of zero or less always returns ExitOK.
func ComputeExitCode(summary *Summary, minResources int) int {
	if minResources <= 0 {
		return ExitOK
	}
	if summary.TotalResources < minResources {
		return ExitBelowMinimum
	}
	return ExitOK
}
