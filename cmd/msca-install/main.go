/*
Package main is the msca-install cli tool.
It installs a versioned NuGet-distributed CLI (Microsoft Security Code Analysis
by default) for a CI step and publishes its location to later steps.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/woozymasta/msca"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	// betteralign:ignore

	// What to install
	OptionsInstall OptionsInstall `group:"Install"`
	// Where the package comes from
	OptionsPackage OptionsPackage `group:"Package"`
	// Fetch behavior
	OptionsFetch OptionsFetch `group:"Fetch"`
	// Output and publishing
	OptionsOutput OptionsOutput `group:"Output"`
}

type OptionsInstall struct {
	Version string `short:"V" long:"cli-version" description:"Exact version, or \"*\" / \"latest\" for the latest available (default \"*\")"`
	Root    string `short:"r" long:"root"        description:"Install root, packages go to <root>/versions (default $AGENT_ROOTDIRECTORY/_msca)"`
	Channel string `short:"c" long:"channel"     description:"Versions a wildcard may resolve to" choice:"stable" choice:"prerelease" default:"stable"`
	Config  string `short:"C" long:"config"      description:"YAML config file, flags take precedence" env:"MSCA_CONFIG"`
	Check   bool   `long:"check"                 description:"Only report whether the exact version is installed (exit 1 if not)"`
	List    bool   `short:"l" long:"list"        description:"List installed versions, newest first, and exit"`
}

type OptionsPackage struct {
	PackageID  string `short:"p" long:"package"    description:"NuGet package id (default Microsoft.Security.CodeAnalysis.Cli)"`
	ToolsDir   string `long:"tools-dir"            description:"Package directory holding the executable (default tools)"`
	Executable string `short:"x" long:"executable" description:"Executable file name (default guardian)"`
	Source     string `short:"s" long:"source"     description:"NuGet feed URL (default nuget.org v3)"`
}

type OptionsFetch struct {
	Dotnet    string        `long:"dotnet"      description:"dotnet binary (default dotnet)"`
	FetchArgs string        `long:"fetch-args"  description:"Extra shell-quoted arguments for dotnet restore"`
	Attempts  int           `short:"a" long:"attempts" description:"Total fetch attempts (<=0 = 3)"`
	Delay     time.Duration `long:"retry-delay" description:"Pause between failed fetch attempts"`
}

type OptionsOutput struct {
	Publish  string `short:"P" long:"publish"   description:"Where to export MSCA_* variables" choice:"auto" choice:"env" choice:"azure" choice:"github" choice:"none" default:"auto"`
	LogLevel string `short:"L" long:"log-level" description:"Log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

// run is main without process globals. It returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	var opt Options
	parser := flags.NewParser(&opt, flags.Default|flags.AllowBoolValues)
	parser.LongDescription = `msca-install installs a NuGet-distributed CLI for a build step.
An exact version already on disk is reused, otherwise the package is restored with dotnet
(3 attempts) and the latest matching version folder is selected. MSCA_FILEPATH or
MSCA_DIRECTORY in the environment bypass installation entirely.`
	if _, err := parser.ParseArgs(args); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	logger := newLogger(stderr, opt.OptionsOutput.LogLevel)

	rOpt, err := toOptions(opt, getenv)
	if err != nil {
		logger.WithError(err).Error("configuration")
		return 2
	}
	rOpt.Logger = logger

	if opt.OptionsInstall.List {
		versions, err := msca.NewResolver(rOpt, nil).Installed()
		if err != nil {
			logger.WithError(err).Error("list installed versions")
			return 1
		}
		for _, v := range versions {
			fmt.Fprintln(stdout, v)
		}
		return 0
	}

	if opt.OptionsInstall.Check {
		res := msca.NewResolver(rOpt, nil)
		if res.IsInstalled(res.Options().Version) {
			fmt.Fprintln(stdout, "installed")
			return 0
		}
		fmt.Fprintln(stdout, "not installed")
		return 1
	}

	inst, err := msca.Install(ctx, rOpt)
	if err != nil {
		logger.WithError(err).Error("install failed")
		return 1
	}

	pubs := msca.Publishers(msca.ParsePublish(opt.OptionsOutput.Publish), getenv, stdout)
	if err := msca.PublishInstallation(inst, pubs...); err != nil {
		logger.WithError(err).Error("publish failed")
		return 1
	}

	logger.WithFields(log.Fields{
		"version": inst.Version,
		"source":  inst.Source,
	}).Infof("%s = %s", msca.EnvFilePath, inst.FilePath)

	return 0
}

// toOptions maps cli flags (and the optional config file) onto library options.
func toOptions(opt Options, getenv func(string) string) (msca.Options, error) {
	rOpt := msca.Options{
		Root:       opt.OptionsInstall.Root,
		Version:    opt.OptionsInstall.Version,
		Channel:    msca.ParseChannel(opt.OptionsInstall.Channel),
		PackageID:  opt.OptionsPackage.PackageID,
		ToolsDir:   opt.OptionsPackage.ToolsDir,
		Executable: opt.OptionsPackage.Executable,
		Source:     opt.OptionsPackage.Source,
		Dotnet:     opt.OptionsFetch.Dotnet,
		FetchArgs:  opt.OptionsFetch.FetchArgs,
		Attempts:   opt.OptionsFetch.Attempts,
		RetryDelay: opt.OptionsFetch.Delay,
	}

	if path := opt.OptionsInstall.Config; path != "" {
		base, err := msca.LoadConfig(path)
		if err != nil {
			return msca.Options{}, err
		}
		rOpt = rOpt.Merge(base)
	}

	if rOpt.Root == "" {
		rOpt.Root = msca.DefaultRoot(getenv)
	}

	return msca.OverridesFromEnv(rOpt, getenv), nil
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}
