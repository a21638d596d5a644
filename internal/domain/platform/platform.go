// Package platform models the operating systems a guide can target and
// detects the one the user is most likely typing commands into.
package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

// OS is the operating system a rendered command is meant for.
type OS string

const (
	// Mac is macOS.
	Mac OS = "mac"
	// Windows is Windows (Command Prompt or PowerShell).
	Windows OS = "windows"
	// Linux is Linux, including WSL shells.
	Linux OS = "linux"
)

// All returns every supported OS in display order.
func All() []OS {
	return []OS{Mac, Windows, Linux}
}

// ParseOS converts user input into an OS.
// Accepts the canonical names plus common aliases (macos, darwin, osx, win).
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mac", "macos", "darwin", "osx":
		return Mac, nil
	case "windows", "win":
		return Windows, nil
	case "linux":
		return Linux, nil
	default:
		return "", fmt.Errorf("unknown operating system %q (want mac, windows or linux)", s)
	}
}

// Valid reports whether o is one of the supported values.
func (o OS) Valid() bool {
	switch o {
	case Mac, Windows, Linux:
		return true
	}
	return false
}

// String returns the canonical name.
func (o OS) String() string {
	return string(o)
}

// Label returns the display name shown in headers.
func (o OS) Label() string {
	switch o {
	case Mac:
		return "macOS"
	case Windows:
		return "Windows"
	case Linux:
		return "Linux"
	default:
		return string(o)
	}
}

// TerminalName returns what the user should open to run a command.
func (o OS) TerminalName() string {
	if o == Windows {
		return "Command Prompt or PowerShell"
	}
	return "Terminal"
}

// Next cycles mac → windows → linux → mac.
func (o OS) Next() OS {
	all := All()
	for i, candidate := range all {
		if candidate == o {
			return all[(i+1)%len(all)]
		}
	}
	return Mac
}

// Environment describes where the process is running.
type Environment string

const (
	// EnvNative is a native OS environment.
	EnvNative Environment = "native"
	// EnvWSL is Windows Subsystem for Linux.
	EnvWSL Environment = "wsl"
)

// Platform holds the detected OS and environment.
type Platform struct {
	os          OS
	environment Environment
}

var (
	detected     *Platform
	detectOnce   sync.Once
	testPlatform *Platform
)

// Detect returns the host platform. Results are cached after the first call.
// Unsupported operating systems fall back to Linux, whose commands are the
// closest to a generic POSIX shell.
func Detect() *Platform {
	if testPlatform != nil {
		return testPlatform
	}
	detectOnce.Do(func() {
		detected = detect(runtime.GOOS)
	})
	return detected
}

// SetTestPlatform overrides detection. Pass nil to reset.
func SetTestPlatform(p *Platform) {
	testPlatform = p
}

func detect(goos string) *Platform {
	p := &Platform{environment: EnvNative}
	switch goos {
	case "darwin":
		p.os = Mac
	case "windows":
		p.os = Windows
	default:
		p.os = Linux
		if isWSL() {
			p.environment = EnvWSL
		}
	}
	return p
}

// isWSL checks /proc/version for Microsoft kernel markers.
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// New creates a Platform with fixed values.
func New(o OS, env Environment) *Platform {
	return &Platform{os: o, environment: env}
}

// OS returns the detected operating system.
func (p *Platform) OS() OS {
	return p.os
}

// Environment returns the execution environment.
func (p *Platform) Environment() Environment {
	return p.environment
}

// IsWSL returns true when running inside WSL.
func (p *Platform) IsWSL() bool {
	return p.environment == EnvWSL
}

// String returns a human-readable description such as "Linux (WSL)".
func (p *Platform) String() string {
	if p.IsWSL() {
		return p.os.Label() + " (WSL)"
	}
	return p.os.Label()
}
