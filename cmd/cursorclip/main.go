// Package main starts the cursorclip daemon.
package main

import (
	"log"
	"os"
)

// main is the entrypoint for the cursorclip daemon.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		logFatal(err)
	}
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}
