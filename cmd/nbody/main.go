package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

func main() {
	os.Exit(run(os.Args[1:], os.LookupEnv, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code
// Deferred cleanup, the log file included, completes before main exits
func run(args []string, lookup func(string) (string, bool), stdout, stderr io.Writer) int {
	f, opts, err := resolveConfig(args, lookup, stderr)
	if err != nil {
		if isHelp(err) {
			return 0
		}
		fmt.Fprintf(stderr, "nbody: %v\n", err)
		return 1
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	seed := resolveSeed(f.World.Seed, time.Now)
	log.Printf("config resolved: bodies=%d gravity=%g seed=%d", f.World.Bodies, f.World.Gravity, seed)

	if f.Run.Ticks > 0 {
		err = runHeadless(f, seed, stdout)
	} else {
		err = runInteractive(f, seed)
	}
	if err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintf(stderr, "nbody: %v\n", err)
		return 1
	}
	return 0
}
