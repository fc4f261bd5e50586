//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// run invokes the built CLI binary with the given arguments.
func run(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

// Research runs a supplier discovery batch over the due queue items.
// See prd001-research-queue and prd002-search for full requirements.
func Research() error {
	mg.Deps(Build)
	return run("research")
}

// Score prints the ranked supplier scoring report.
// See prd005-scoring for full requirements.
func Score() error {
	mg.Deps(Build)
	return run("score")
}

// Queue lists the research queue.
func Queue() error {
	mg.Deps(Build)
	return run("queue", "list")
}
