package msca

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultPackageID is the NuGet package installed when none is configured.
	DefaultPackageID = "Microsoft.Security.CodeAnalysis.Cli"
	// DefaultExecutable is the tool file name inside the tools directory.
	DefaultExecutable = "guardian"
	// DefaultToolsDir is the package subdirectory holding the executable.
	DefaultToolsDir = "tools"
	// DefaultSource is the NuGet feed used by the fetcher.
	DefaultSource = "https://api.nuget.org/v3/index.json"
	// DefaultAttempts is the total number of fetch attempts (first try + 2 retries).
	DefaultAttempts = 3
	// Wildcard requests the latest available version.
	Wildcard = "*"
)

// Options configures resolution and installation.
type Options struct {
	// Logger receives progress and debug output. Nil means logrus.StandardLogger().
	Logger *log.Logger `yaml:"-"`

	// Root holds the "versions" packages directory. Empty means DefaultRoot().
	Root string `yaml:"root"`

	// Version is an exact version ("1.2.3") or a wildcard ("*", "latest", "1.*").
	Version string `yaml:"version"`

	// PackageID is the NuGet package id. Default DefaultPackageID.
	PackageID string `yaml:"package"`

	// ToolsDir is the package-relative directory containing Executable.
	ToolsDir string `yaml:"tools_dir"`

	// Executable is the tool file name. Default DefaultExecutable.
	Executable string `yaml:"executable"`

	// Source is the NuGet feed URL passed to the fetcher.
	Source string `yaml:"source"`

	// Dotnet is the dotnet binary used by DotnetFetcher. Default "dotnet".
	Dotnet string `yaml:"dotnet"`

	// FetchArgs are extra shell-quoted arguments appended to the restore command.
	FetchArgs string `yaml:"fetch_args"`

	// FilePathOverride, when set, is returned as the tool path without any resolution.
	FilePathOverride string `yaml:"-"`

	// DirectoryOverride, when set, is used as the tools directory without any resolution.
	DirectoryOverride string `yaml:"-"`

	// Attempts is the total number of fetch attempts. Zero means DefaultAttempts.
	Attempts int `yaml:"attempts"`

	// RetryDelay is the pause between failed fetch attempts.
	RetryDelay time.Duration `yaml:"retry_delay"`

	// Channel decides whether wildcard selection considers pre-release directories.
	Channel Channel `yaml:"channel"`
}

// normalized returns a copy with implicit defaults applied.
func (o Options) normalized() Options {
	out := o

	if out.Logger == nil {
		out.Logger = log.StandardLogger()
	}

	out.Version = strings.TrimSpace(out.Version)
	if toTok(out.Version) == "latest" || out.Version == "" {
		out.Version = Wildcard
	}

	if out.Root == "" {
		out.Root = DefaultRoot(os.Getenv)
	}

	if out.PackageID == "" {
		out.PackageID = DefaultPackageID
	}

	if out.ToolsDir == "" {
		out.ToolsDir = DefaultToolsDir
	}

	if out.Executable == "" {
		out.Executable = DefaultExecutable
	}

	if out.Source == "" {
		out.Source = DefaultSource
	}

	if out.Dotnet == "" {
		out.Dotnet = "dotnet"
	}

	if out.Attempts <= 0 {
		out.Attempts = DefaultAttempts
	}

	return out
}

// IsWildcard reports whether a version specifier requests "latest" resolution.
// Wildcard specifiers never take the cache-hit shortcut.
func IsWildcard(spec string) bool {
	spec = toTok(spec)
	return spec == "" || spec == "latest" || strings.Contains(spec, Wildcard)
}

// DefaultRoot returns $AGENT_ROOTDIRECTORY/_msca on build agents and
// <user cache dir>/msca elsewhere.
func DefaultRoot(getenv func(string) string) string {
	if dir := getenv("AGENT_ROOTDIRECTORY"); dir != "" {
		return filepath.Join(dir, "_msca")
	}

	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "msca")
	}

	return filepath.Join(os.TempDir(), "msca")
}

// Channel selects which version directories a wildcard may resolve to.
type Channel uint8

const (
	// ChannelStable considers only directories without a pre-release tag.
	ChannelStable Channel = iota
	// ChannelPreRelease considers pre-release directories as well.
	ChannelPreRelease
)

// String returns a stable textual representation for Channel.
func (c Channel) String() string {
	if c == ChannelPreRelease {
		return "prerelease"
	}

	return "stable"
}

// UnmarshalText lets Channel be read from config files.
func (c *Channel) UnmarshalText(b []byte) error {
	*c = ParseChannel(string(b))
	return nil
}

// ParseChannel maps free-form tokens to Channel.
// Supported aliases (case-insensitive):
//
//	stable:     "", "stable", "release", "ga"
//	prerelease: "prerelease", "pre", "preview", "beta", "all"
func ParseChannel(s string) Channel {
	switch toTok(s) {
	case "prerelease", "pre-release", "pre", "preview", "beta", "all":
		return ChannelPreRelease
	default:
		return ChannelStable
	}
}

// Publish selects where a resolved installation is exported.
type Publish uint8

const (
	// PublishAuto exports to the process env plus whichever CI channel is detected.
	PublishAuto Publish = iota
	// PublishEnv exports to the process environment only.
	PublishEnv
	// PublishAzure emits Azure Pipelines setvariable logging commands.
	PublishAzure
	// PublishGitHub appends to the GitHub Actions $GITHUB_ENV file.
	PublishGitHub
	// PublishNone exports nothing.
	PublishNone
)

// String returns a stable textual representation for Publish.
func (p Publish) String() string {
	switch p {
	case PublishEnv:
		return "env"
	case PublishAzure:
		return "azure"
	case PublishGitHub:
		return "github"
	case PublishNone:
		return "none"
	default:
		return "auto"
	}
}

// ParsePublish maps free-form tokens to Publish.
// Supported aliases (case-insensitive):
//
//	auto:   "", "auto", "detect"
//	env:    "env", "process"
//	azure:  "azure", "ado", "vso", "azure-pipelines"
//	github: "github", "gh", "actions", "github-actions"
//	none:   "none", "off", "no"
func ParsePublish(s string) Publish {
	switch toTok(s) {
	case "env", "process":
		return PublishEnv
	case "azure", "ado", "vso", "azure-pipelines":
		return PublishAzure
	case "github", "gh", "actions", "github-actions":
		return PublishGitHub
	case "none", "off", "no":
		return PublishNone
	default:
		return PublishAuto
	}
}

// SortMode controls the ordering of version listings.
type SortMode uint8

const (
	// SortNone preserves the existing order.
	SortNone SortMode = iota
	// SortAsc sorts oldest first.
	SortAsc
	// SortDesc sorts newest first.
	SortDesc
)

// String returns a stable textual representation for SortMode.
func (m SortMode) String() string {
	switch m {
	case SortAsc:
		return "ascending"
	case SortDesc:
		return "descending"
	default:
		return "none"
	}
}

// ParseSort maps strings to SortMode.
// Supported aliases:
//
//	asc:  "asc","ascending","inc","increase","up"
//	desc: "desc","descending","dec","decrease","down"
//	none: "none","default","asis"
func ParseSort(s string) SortMode {
	switch toTok(s) {
	// ascending (old -> new)
	case "asc", "ascending", "inc", "increase", "up":
		return SortAsc

	// descending (new -> old)
	case "desc", "descending", "dec", "decrease", "down":
		return SortDesc

	default:
		return SortNone
	}
}
