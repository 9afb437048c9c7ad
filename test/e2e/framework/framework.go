package framework

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
)

// findProjectRoot searches for the project root directory containing go.mod
func findProjectRoot(startDir string) string {
	dir := startDir
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			// Check if this go.mod declares the main module (not just requires it)
			content, err := os.ReadFile(goModPath)
			if err == nil && strings.HasPrefix(strings.TrimSpace(string(content)), "module github.com/Hanaasagi/prmpt\n") {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root directory
		}
		dir = parent
	}
	return ""
}

// Framework provides utilities for running e2e tests
type Framework struct {
	BinaryPath string
	Timeout    time.Duration
}

// TestCase represents a single e2e test case. The binary renders Script
// inside a pseudo terminal of the given size, with its config and state
// directories in a fresh temporary home.
type TestCase struct {
	Name           string
	Script         string
	Config         string
	Args           []string
	Columns        uint16
	Rows           uint16
	ExpectedOutput string
	ExpectedExit   int
	Timeout        time.Duration
}

// TestResult represents the result of a test case
type TestResult struct {
	Name     string
	Passed   bool
	Error    string
	Output   string
	ExitCode int
	Elapsed  time.Duration
}

// NewFramework creates a new e2e test framework
func NewFramework() *Framework {
	return &Framework{
		BinaryPath: "",
		Timeout:    5 * time.Second,
	}
}

// SetBinaryPath sets the path to the prmpt binary
func (f *Framework) SetBinaryPath(path string) {
	f.BinaryPath = path
}

// BuildBinary builds the prmpt binary for testing
func (f *Framework) BuildBinary() error {
	if f.BinaryPath != "" {
		return nil // Already set
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	projectRoot := findProjectRoot(wd)
	if projectRoot == "" {
		return fmt.Errorf("could not find project root directory from %s", wd)
	}

	buildDir := filepath.Join(projectRoot, "build")
	binaryPath := filepath.Join(buildDir, "prmpt")

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/prmpt")
	cmd.Dir = projectRoot

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to build binary: %w, output: %s", err, string(output))
	}

	f.BinaryPath = binaryPath
	return nil
}

// prepareHome writes the script and config of testCase into a temporary
// home directory and returns the command line arguments pointing at them.
func prepareHome(home string, testCase TestCase) ([]string, error) {
	configDir := filepath.Join(home, ".config", "prmpt")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}

	scriptPath := filepath.Join(configDir, "test.prmpt")
	if err := os.WriteFile(scriptPath, []byte(testCase.Script), 0644); err != nil {
		return nil, err
	}
	configPath := filepath.Join(configDir, "prmpt.toml")
	if err := os.WriteFile(configPath, []byte(testCase.Config), 0644); err != nil {
		return nil, err
	}

	return append([]string{"--config", configPath, "--script", scriptPath}, testCase.Args...), nil
}

// RunTest executes a single test case
func (f *Framework) RunTest(testCase TestCase) TestResult {
	start := time.Now()
	result := TestResult{
		Name:   testCase.Name,
		Passed: false,
	}
	fail := func(format string, a ...any) TestResult {
		result.Error = fmt.Sprintf(format, a...)
		result.Elapsed = time.Since(start)
		return result
	}

	if err := f.BuildBinary(); err != nil {
		return fail("failed to build binary: %v", err)
	}

	home, err := os.MkdirTemp("", "prmpt-e2e-*")
	if err != nil {
		return fail("failed to create temp home: %v", err)
	}
	defer os.RemoveAll(home)

	args, err := prepareHome(home, testCase)
	if err != nil {
		return fail("failed to prepare home: %v", err)
	}

	cmd := exec.Command(f.BinaryPath, args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"PWD="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"XDG_STATE_HOME="+filepath.Join(home, ".local", "state"),
		"SHELL=/bin/bash",
	)

	size := &pty.Winsize{Cols: testCase.Columns, Rows: testCase.Rows}
	if size.Cols == 0 {
		size.Cols = 80
	}
	if size.Rows == 0 {
		size.Rows = 24
	}

	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return fail("failed to start command: %v", err)
	}
	defer ptmx.Close()

	timeout := testCase.Timeout
	if timeout == 0 {
		timeout = f.Timeout
	}

	outputCh := make(chan string, 1)
	go func() {
		var output bytes.Buffer
		// the pty reports EIO once the child has exited
		_, _ = io.Copy(&output, ptmx)
		outputCh <- output.String()
	}()

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	select {
	case err := <-waitCh:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else if err != nil {
			return fail("failed to wait for command: %v", err)
		}
	case <-time.After(timeout):
		_ = cmd.Process.Kill()
		return fail("test timed out")
	}

	select {
	case result.Output = <-outputCh:
	case <-time.After(time.Second):
	}

	// the terminal turns \n into \r\n
	output := strings.ReplaceAll(result.Output, "\r\n", "\n")

	switch {
	case !strings.Contains(output, testCase.ExpectedOutput):
		return fail("output %q does not contain %q", output, testCase.ExpectedOutput)
	case result.ExitCode != testCase.ExpectedExit:
		return fail("exit code %d, expected %d", result.ExitCode, testCase.ExpectedExit)
	}

	result.Passed = true
	result.Elapsed = time.Since(start)
	return result
}

// RunTests executes multiple test cases
func (f *Framework) RunTests(testCases []TestCase) []TestResult {
	results := make([]TestResult, len(testCases))
	for i, testCase := range testCases {
		fmt.Printf("Running test: %s\n", testCase.Name)
		results[i] = f.RunTest(testCase)
		if results[i].Passed {
			fmt.Printf("PASS %s (%.2fs)\n", testCase.Name, results[i].Elapsed.Seconds())
		} else {
			fmt.Printf("FAIL %s (%.2fs): %s\n", testCase.Name, results[i].Elapsed.Seconds(), results[i].Error)
		}
	}
	return results
}

// PrintSummary prints a summary of test results
func (f *Framework) PrintSummary(results []TestResult) {
	passed := 0
	total := len(results)

	fmt.Println("\n=== Test Summary ===")
	for _, result := range results {
		if result.Passed {
			passed++
			fmt.Printf("PASS %s\n", result.Name)
		} else {
			fmt.Printf("FAIL %s: %s\n", result.Name, result.Error)
		}
	}

	fmt.Printf("\nTotal: %d, Passed: %d, Failed: %d\n", total, passed, total-passed)
}
