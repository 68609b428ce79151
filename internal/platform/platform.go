// Package platform resolves OS-convention data directories for buildpulse.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// Application naming constants used when building data directory paths.
const (
	AppName      = "BuildPulse" // Used on macOS and Windows
	AppNameLower = "buildpulse" // Used on Linux, BSDs and unrecognized platforms
)

// Environment variable names consulted by DataDir. These are platform
// convention constants, not user-facing configuration.
const (
	flatpakDataHomeEnv = "FLATPAK_XDG_DATA_HOME"
	xdgDataHomeEnv     = "XDG_DATA_HOME"
	xdgConfigHomeEnv   = "XDG_CONFIG_HOME"
	localAppDataEnv    = "LOCALAPPDATA"
)

// Platform abstracts host OS identity and ambient environment lookups
// so tests can substitute fixed fixtures without mutating the real
// process environment.
type Platform interface {
	// OS returns the GOOS-style operating system identifier.
	OS() string
	// HomeDir returns the current user's home directory.
	HomeDir() (string, error)
	// Getenv looks up an environment variable, empty when unset.
	Getenv(key string) string
}

// hostPlatform reads the real process environment.
type hostPlatform struct{}

func (hostPlatform) OS() string { return runtime.GOOS }

func (hostPlatform) HomeDir() (string, error) { return os.UserHomeDir() }

func (hostPlatform) Getenv(key string) string { return os.Getenv(key) }

// Host returns the Platform backed by the real host environment.
func Host() Platform {
	return hostPlatform{}
}

// DataDir resolves the per-user base data directory for buildpulse.
// Every platform branch produces a path; unresolvable pieces fall
// through to defaults rather than failing. The directory is not created.
func DataDir(p Platform) string {
	home, err := p.HomeDir()
	if err != nil {
		home = "."
	}

	switch p.OS() {
	case "darwin", "ios":
		return filepath.Join(home, "Library", "Application Support", AppName)

	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		if dir := p.Getenv(flatpakDataHomeEnv); dir != "" {
			return filepath.Join(dir, AppNameLower)
		}
		if dir := p.Getenv(xdgDataHomeEnv); dir != "" {
			return filepath.Join(dir, AppNameLower)
		}
		return filepath.Join(home, ".local", "share", AppNameLower)

	case "windows":
		if dir := p.Getenv(localAppDataEnv); dir != "" {
			return filepath.Join(dir, AppName)
		}
		return filepath.Join(home, "AppData", "Local", AppName)

	default:
		if dir := p.Getenv(xdgConfigHomeEnv); dir != "" {
			return filepath.Join(dir, AppNameLower)
		}
		return filepath.Join(home, ".config", AppNameLower)
	}
}

// TimingsDir returns the directory under which build timing summaries
// are persisted.
func TimingsDir(p Platform) string {
	return filepath.Join(DataDir(p), "build_timings")
}
