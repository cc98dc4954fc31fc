package kernel

import "fmt"

// A ConfigurationError reports a run configuration the kernel cannot accept.
// It is returned, not panicked: the surrounding boundary decides how to abort.
type ConfigurationError struct {
	Reason string
	Config Config
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("kernel: %s (totalVPs %d, runSeed %d)",
		e.Reason, e.Config.TotalVPs, e.Config.RunSeed)
}
