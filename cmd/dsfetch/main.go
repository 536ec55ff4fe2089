package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitInvalidArgs     = 2
	ExitSourceNotAccess = 3
	ExitExtractError    = 4
	ExitStorageError    = 5
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "montgomery":
		return runMontgomery(cmdArgs)
	case "omniglot":
		return runOmniglot(cmdArgs)
	case "sample":
		return runSample(cmdArgs)
	case "publish":
		return runPublish(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: dsfetch <command> [options]

Commands:
  montgomery  Fetch, extract, sample, and index the Montgomery chest X-ray set
  omniglot    Fetch, extract, and sample the Omniglot handwritten character set
  sample      Prune a directory tree down to a retention budget
  publish     Upload a pruned fixture tree to object storage

Run 'dsfetch <command> -h' for command-specific help.`)
}
