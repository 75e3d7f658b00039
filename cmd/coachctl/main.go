// Command coachctl runs the decision core locally against JSON files.
package main

import (
	"os"

	"github.com/loverescue/coachcore/internal/redact"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		redact.Logf("coachctl: %v", err)
		os.Exit(1)
	}
}
