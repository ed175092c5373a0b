// Command ropedit is a modal terminal text editor.
package main

import (
	"fmt"
	"os"
)

// Build information injected via ldflags at build time.
var (
	buildVersion = "dev"
	commit       = "none"
	date         = "unknown"
)

func main() {
	SetVersion(fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, commit, date))
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
