package vm

import (
	"io"
	"log"
	"os"
)

// packageLog follows the teacher's env-var-gated debug logger pattern:
// silent (io.Discard) unless ARMCORE_DEBUG is set, so warnings never show
// up unannounced in a host application's own log stream.
var packageLog = newPackageLogger()

func newPackageLogger() *log.Logger {
	if os.Getenv("ARMCORE_DEBUG") == "" {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "armcore: ", log.Ltime|log.Lmicroseconds)
}

// logWarning records a side-channel warning (spec.md §7: "Logged warnings
// ... are side channels only, never counted as faults").
func logWarning(format string, args ...any) {
	packageLog.Printf(format, args...)
}
