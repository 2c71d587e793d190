// Package harness is tscut's only point of contact with the outside world:
// it shells out to the project's own Hardhat installation to compile
// contracts and run a single test file, and hands the runner's stdout back
// for correlation. Nothing here is part of the analysis itself — a caller
// that never wants to dry-run a candidate never needs this package.
package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Hardhat drives `npx hardhat` in a project directory.
type Hardhat struct {
	// Dir is the Hardhat project root; commands run with this as their
	// working directory.
	Dir string
}

// New returns a Hardhat harness rooted at dir.
func New(dir string) *Hardhat {
	return &Hardhat{Dir: dir}
}

// Compile runs `npx hardhat compile`, failing if the project's contracts
// don't build. Run this once per dry run, before any per-file Test calls,
// since a single compile is shared across every test file.
func (h *Hardhat) Compile(ctx context.Context) error {
	_, err := h.run(ctx, "compile")
	return err
}

// TestResult is the outcome of running one test file.
type TestResult struct {
	// Passed is true if the `hardhat test` process exited zero.
	Passed bool
	// Stdout is the runner's full standard output and standard error,
	// combined in one buffer, for candidateindex.ObserveRunnerOutput to
	// scan.
	Stdout string
}

// Test runs `npx hardhat test <path>` and reports whether it passed.
// A non-zero exit is not itself an error: a candidate whose deletion
// breaks the test is an expected outcome, not a harness failure. Test
// returns an error only when the process could not be started or its
// output could not be collected at all.
func (h *Hardhat) Test(ctx context.Context, path string) (TestResult, error) {
	stdout, err := h.run(ctx, "test", path)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return TestResult{Passed: false, Stdout: stdout}, nil
		}
		return TestResult{}, err
	}
	return TestResult{Passed: true, Stdout: stdout}, nil
}

func (h *Hardhat) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "npx", append([]string{"hardhat"}, args...)...)
	cmd.Dir = h.Dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stdout
	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("harness: npx hardhat %v: %w", args, err)
	}
	return stdout.String(), nil
}

