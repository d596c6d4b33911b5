package main

import (
	"errors"
	"os"
	"runtime"

	"github.com/mnafees/chopper/internal/app"
	"github.com/mnafees/chopper/internal/options"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

// SDL has to be driven from the main OS thread
func init() {
	runtime.LockOSThread()
}

func main() {
	ctx := retroapp.Context()

	opts, err := options.Parse("chopper-term", os.Args[1:], options.FrontendTerm)
	logger := options.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *options.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	if err := app.Run(ctx, logger, opts); err != nil {
		logger.Error("Running program failed", log.Err(err))
		os.Exit(1)
	}
}
