package msca

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads options from a YAML file.
//
//	version: "*"
//	package: Microsoft.Security.CodeAnalysis.Cli
//	root: /agent/_msca
//	attempts: 3
//	retry_delay: 10s
//	channel: stable
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrapf(err, "reading config %s", path)
	}

	var opt Options
	if err := yaml.Unmarshal(data, &opt); err != nil {
		return Options{}, errors.Wrapf(err, "parsing config %s", path)
	}

	return opt, nil
}

// Merge fills the zero fields of o from base and returns the result.
// Overrides and the logger are taken from o only.
func (o Options) Merge(base Options) Options {
	out := o

	pick := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	pick(&out.Root, base.Root)
	pick(&out.Version, base.Version)
	pick(&out.PackageID, base.PackageID)
	pick(&out.ToolsDir, base.ToolsDir)
	pick(&out.Executable, base.Executable)
	pick(&out.Source, base.Source)
	pick(&out.Dotnet, base.Dotnet)
	pick(&out.FetchArgs, base.FetchArgs)

	if out.Attempts == 0 {
		out.Attempts = base.Attempts
	}

	if out.RetryDelay == 0 {
		out.RetryDelay = base.RetryDelay
	}

	if out.Channel == ChannelStable {
		out.Channel = base.Channel
	}

	return out
}
