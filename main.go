package main

import (
	"os"

	"github.com/openclaw/gate-ctl/cmd"
	"github.com/openclaw/gate-ctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
