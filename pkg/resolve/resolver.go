// Package resolve locates the target application the starter supervises.
//
// The target may be installed through a ClickOnce-style deployment, which
// registers an application-reference file in a shell-visible shortcuts
// directory, or it may simply sit next to the starter in a manual
// deployment. Resolution therefore walks an ordered fallback chain and the
// first hit wins:
//
//  1. An explicit path argument, validated against the accepted executable
//     names. A bad explicit path is a hard failure, never silently skipped.
//  2. The platform shortcuts directory, under the publisher's subdirectory
//     and then under a subdirectory named after the target, looking for the
//     channel's application-reference file.
//  3. The starter's own executable directory, looking for the channel's
//     executable.
//
// Resolution happens exactly once at startup. A target that later vanishes
// is a terminal condition for the monitor loop, not a trigger to re-resolve.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Kind distinguishes how a resolved target is launched.
type Kind int

const (
	// KindApplicationReference is an indirect launch descriptor
	// (.appref-ms) that the shell resolves to the installed version.
	KindApplicationReference Kind = iota
	// KindExecutable is a direct path to the target binary.
	KindExecutable
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindApplicationReference:
		return "ApplicationReference"
	case KindExecutable:
		return "Executable"
	default:
		return "Unknown"
	}
}

// TargetRef is the resolved launch reference. It is produced once and
// read-only afterwards; the path existed at resolution time but is
// re-checked every monitor tick.
type TargetRef struct {
	Path string
	Kind Kind
}

// ErrNoTarget is wrapped by Resolve when every strategy failed.
var ErrNoTarget = errors.New("no target found")

// ErrBadExplicitPath is wrapped by Resolve when an explicit path argument
// is invalid. The chain stops there; auto-discovery is never consulted.
var ErrBadExplicitPath = errors.New("invalid explicit target path")

// Request carries everything one resolution needs. Directories are
// explicit so tests can point the resolver at fixtures.
type Request struct {
	// TargetName is the logical application name, e.g. "AutoQC".
	TargetName string

	// Publisher is the installing publisher's shortcuts subdirectory.
	Publisher string

	// ReferenceFile is the channel's application-reference file name,
	// e.g. "AutoQC-daily.appref-ms".
	ReferenceFile string

	// ExecutableFile is the channel's executable file name, e.g.
	// "AutoQC.exe", looked for next to the starter.
	ExecutableFile string

	// AcceptedExecutables lists every executable file name an explicit
	// path is allowed to end with.
	AcceptedExecutables []string

	// ExplicitPath is the operator-supplied path argument, if any.
	ExplicitPath string

	// ShortcutsDir is the platform application-shortcuts root.
	ShortcutsDir string

	// ExecDir is the directory holding the starter's own executable.
	ExecDir string
}

// Resolve runs the fallback chain and returns the first usable reference.
func Resolve(req Request) (*TargetRef, error) {
	if req.ExplicitPath != "" {
		return resolveExplicit(req)
	}

	if ref, ok := findReferenceFile(req); ok {
		return ref, nil
	}

	if req.ExecDir != "" {
		path := filepath.Join(req.ExecDir, req.ExecutableFile)
		if fileExists(path) {
			return &TargetRef{Path: path, Kind: KindExecutable}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s not installed under %s and no %s next to the starter",
		ErrNoTarget, req.TargetName, req.ShortcutsDir, req.ExecutableFile)
}

// resolveExplicit validates the operator-supplied path. Both checks are
// hard stops: an explicit argument that does not hold is an operator error
// to surface, not a hint to fall back on.
func resolveExplicit(req Request) (*TargetRef, error) {
	if !fileExists(req.ExplicitPath) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrBadExplicitPath, req.ExplicitPath)
	}

	base := filepath.Base(req.ExplicitPath)
	for _, name := range req.AcceptedExecutables {
		if strings.EqualFold(base, name) {
			return &TargetRef{Path: req.ExplicitPath, Kind: KindExecutable}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s is not one of %s",
		ErrBadExplicitPath, base, strings.Join(req.AcceptedExecutables, ", "))
}

// findReferenceFile searches the shortcuts directory for the channel's
// application-reference file, first under the publisher's subdirectory and
// then under a subdirectory named after the target itself.
func findReferenceFile(req Request) (*TargetRef, bool) {
	if req.ShortcutsDir == "" {
		return nil, false
	}

	for _, sub := range []string{req.Publisher, req.TargetName} {
		if sub == "" {
			continue
		}
		path := filepath.Join(req.ShortcutsDir, sub, req.ReferenceFile)
		if fileExists(path) {
			return &TargetRef{Path: path, Kind: KindApplicationReference}, true
		}
	}
	return nil, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DefaultShortcutsDir returns the platform directory where installers
// register application shortcuts and reference files.
func DefaultShortcutsDir() string {
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs")
		}
		return ""
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Applications")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".local", "share", "applications")
	}
}
