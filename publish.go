package msca

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Publisher exports variables to downstream build steps.
type Publisher interface {
	SetVariable(name, value string) error
}

// PublishInstallation exports MSCA_DIRECTORY, MSCA_FILEPATH and, when known,
// MSCA_VERSION through every publisher.
func PublishInstallation(inst Installation, pubs ...Publisher) error {
	vars := [][2]string{
		{EnvDirectory, inst.Directory},
		{EnvFilePath, inst.FilePath},
	}
	if inst.Version != "" {
		vars = append(vars, [2]string{EnvVersion, inst.Version})
	}

	for _, p := range pubs {
		for _, kv := range vars {
			if err := p.SetVariable(kv[0], kv[1]); err != nil {
				return errors.Wrapf(err, "publishing %s", kv[0])
			}
		}
	}

	return nil
}

// ProcessEnv sets variables in the current process environment.
type ProcessEnv struct{}

// SetVariable calls os.Setenv.
func (ProcessEnv) SetVariable(name, value string) error {
	return os.Setenv(name, value)
}

// AzurePipelines writes setvariable logging commands, which the agent turns
// into variables for later steps.
type AzurePipelines struct {
	W io.Writer
}

// SetVariable writes "##vso[task.setvariable variable=NAME]value".
func (a AzurePipelines) SetVariable(name, value string) error {
	_, err := fmt.Fprintf(a.W, "##vso[task.setvariable variable=%s]%s\n", name, escapeVSO(value))
	return err
}

// escapeVSO escapes the characters the agent treats as command delimiters.
func escapeVSO(s string) string {
	r := strings.NewReplacer("%", "%AZP25", "\r", "%0D", "\n", "%0A")
	return r.Replace(s)
}

// GitHubEnv appends NAME=value lines to the file named by $GITHUB_ENV.
type GitHubEnv struct {
	Path string
}

// SetVariable appends one line to the env file.
func (g GitHubEnv) SetVariable(name, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("multi-line value for %s is not supported", name)
	}

	f, err := os.OpenFile(g.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Publishers returns the publishers for mode. Auto always includes the
// process env and adds Azure Pipelines when TF_BUILD is set and GitHub
// Actions when GITHUB_ENV is set. stdout receives Azure logging commands.
func Publishers(mode Publish, getenv func(string) string, stdout io.Writer) []Publisher {
	switch mode {
	case PublishNone:
		return nil

	case PublishEnv:
		return []Publisher{ProcessEnv{}}

	case PublishAzure:
		return []Publisher{ProcessEnv{}, AzurePipelines{W: stdout}}

	case PublishGitHub:
		pubs := []Publisher{ProcessEnv{}}
		if p := getenv("GITHUB_ENV"); p != "" {
			pubs = append(pubs, GitHubEnv{Path: p})
		}
		return pubs

	default: // PublishAuto
		pubs := []Publisher{ProcessEnv{}}
		if getenv("TF_BUILD") != "" {
			pubs = append(pubs, AzurePipelines{W: stdout})
		}
		if p := getenv("GITHUB_ENV"); p != "" {
			pubs = append(pubs, GitHubEnv{Path: p})
		}
		return pubs
	}
}
