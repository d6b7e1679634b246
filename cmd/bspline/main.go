// Command bspline evaluates, samples and plots B-splines described by YAML
// files.
//
// A spline file looks like this:
//
//	degree: 2
//	knots: [0, 0.1, 0.3, 0.5, 0.7, 0.9, 1] # optional, uniform if omitted
//	controlPoints:                        # numbers or lists of numbers
//	  - [0, 0]
//	  - [1, 2]
//	  - [3, 2]
//	  - [4, 0]
//	flatten: true                         # optional, defaults to true
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}
