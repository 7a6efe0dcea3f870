package msca

import "path/filepath"

// Environment variables read as overrides and written by publishers.
const (
	EnvFilePath  = "MSCA_FILEPATH"
	EnvDirectory = "MSCA_DIRECTORY"
	EnvVersion   = "MSCA_VERSION"
)

// OverridesFromEnv copies the MSCA_FILEPATH and MSCA_DIRECTORY overrides
// into opt.
func OverridesFromEnv(opt Options, getenv func(string) string) Options {
	opt.FilePathOverride = getenv(EnvFilePath)
	opt.DirectoryOverride = getenv(EnvDirectory)

	return opt
}

// fromOverrides builds an installation from explicit overrides.
// The file path override wins over the directory override.
func fromOverrides(opt Options) (Installation, bool) {
	switch {
	case opt.FilePathOverride != "":
		return Installation{
			Directory: filepath.Dir(opt.FilePathOverride),
			FilePath:  opt.FilePathOverride,
			Source:    SourceOverride,
		}, true

	case opt.DirectoryOverride != "":
		return Installation{
			Directory: opt.DirectoryOverride,
			FilePath:  filepath.Join(opt.DirectoryOverride, opt.Executable),
			Source:    SourceOverride,
		}, true

	default:
		return Installation{}, false
	}
}
