// Package sysenv answers questions about the machine and the user the prompt
// is rendered for.
package sysenv

import (
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// System implements prmpt.Environment from the operating system. Lookups are
// done once and cached.
type System struct {
	username string
	hostname string
	homeDir  string
}

// New queries the operating system for the current user and host.
func New() *System {
	s := &System{}

	if u, err := user.Current(); err == nil {
		s.username = u.Username
		s.homeDir = u.HomeDir
	} else {
		slog.Debug("failed to look up current user", "error", err)
		s.username = os.Getenv("USER")
	}

	if home, err := os.UserHomeDir(); err == nil {
		s.homeDir = home
	}

	if host, err := os.Hostname(); err == nil {
		s.hostname = host
	} else {
		slog.Debug("failed to look up hostname", "error", err)
	}

	return s
}

func (s *System) Username() string { return s.username }
func (s *System) Hostname() string { return s.hostname }
func (s *System) HomeDir() string  { return s.homeDir }

// Default terminal size when neither the terminal nor the environment
// says otherwise.
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

// TerminalSize returns the size of the controlling terminal. The prompt's
// stdout is usually captured by the shell, so stderr and stdin are asked
// first, then $COLUMNS and $LINES.
func TerminalSize() (columns, rows int) {
	for _, f := range []*os.File{os.Stderr, os.Stdin, os.Stdout} {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}

	return envInt("COLUMNS", DefaultColumns), envInt("LINES", DefaultRows)
}

func envInt(name string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(name)))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// UID returns the effective user id, or -1 where there is none.
func UID() int {
	return os.Geteuid()
}

// Shell returns the invoking shell's name, from $SHELL.
func Shell() string {
	return filepath.Base(os.Getenv("SHELL"))
}

// WorkingDir returns the current directory, preferring $PWD so symlinked
// paths display the way the shell shows them.
func WorkingDir() string {
	if pwd := os.Getenv("PWD"); pwd != "" {
		if info, err := os.Stat(pwd); err == nil && info.IsDir() {
			return pwd
		}
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return dir
}

// IsDebugMode reports whether PRMPT_DEBUG asks for debug logging.
func IsDebugMode() bool {
	isDebug := strings.ToLower(os.Getenv("PRMPT_DEBUG"))
	if isDebug == "true" || isDebug == "1" {
		return true
	}
	return false
}
