package msca

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Fetcher populates a packages directory with a version of a package.
// Implementations report failure through the returned error only; the
// resolver decides what a failure means by inspecting the disk afterwards.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) error
}

// FetchRequest describes one fetch attempt.
type FetchRequest struct {
	PackageID   string // NuGet package id
	Version     string // exact version or floating "*" specifier
	PackagesDir string // restore target, versions are laid out as <id>/<version>
	Source      string // feed URL
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, req FetchRequest) error

// Fetch calls f(ctx, req).
func (f FetcherFunc) Fetch(ctx context.Context, req FetchRequest) error {
	return f(ctx, req)
}

// DotnetFetcher restores packages with "dotnet restore" against a generated
// project file.
type DotnetFetcher struct {
	Logger    *log.Logger
	Dotnet    string   // dotnet binary
	ExtraArgs []string // appended to the restore command
}

// NewDotnetFetcher builds a DotnetFetcher from opt. FetchArgs is split with
// shell quoting rules.
func NewDotnetFetcher(opt Options) (*DotnetFetcher, error) {
	opt = opt.normalized()

	extra, err := shellquote.Split(opt.FetchArgs)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing fetch args %q", opt.FetchArgs)
	}

	return &DotnetFetcher{
		Logger:    opt.Logger,
		Dotnet:    opt.Dotnet,
		ExtraArgs: extra,
	}, nil
}

// Fetch runs one restore and waits for it to finish.
func (f *DotnetFetcher) Fetch(ctx context.Context, req FetchRequest) error {
	if !packageIDRe.MatchString(req.PackageID) {
		return fmt.Errorf("invalid package id %q", req.PackageID)
	}

	tmp, err := os.MkdirTemp("", "msca-restore-*")
	if err != nil {
		return errors.Wrap(err, "creating restore project dir")
	}
	defer os.RemoveAll(tmp)

	proj := filepath.Join(tmp, "msca-task-lib.proj")
	if err := os.WriteFile(proj, []byte(restoreProject(req.PackageID)), 0o644); err != nil {
		return errors.Wrap(err, "writing restore project")
	}

	args := f.restoreArgs(proj, req)

	logger := f.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	entry := logger.WithFields(log.Fields{
		"package": req.PackageID,
		"version": req.Version,
	})
	entry.Debugf("running %s", shellquote.Join(append([]string{f.binary()}, args...)...))

	out := entry.WriterLevel(log.DebugLevel)
	defer out.Close()

	cmd := exec.CommandContext(ctx, f.binary(), args...)
	cmd.Dir = tmp
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s restore %s %s", f.binary(), req.PackageID, req.Version)
	}

	return nil
}

func (f *DotnetFetcher) binary() string {
	if f.Dotnet == "" {
		return "dotnet"
	}

	return f.Dotnet
}

// restoreArgs builds the argument list for "dotnet restore".
func (f *DotnetFetcher) restoreArgs(proj string, req FetchRequest) []string {
	args := []string{
		"restore", proj,
		"/p:MscaPackageVersion=" + req.Version,
		"--packages", req.PackagesDir,
	}

	if req.Source != "" {
		args = append(args, "--source", req.Source)
	}

	return append(args, f.ExtraArgs...)
}

// restoreProject renders a project whose only purpose is to pull id at
// $(MscaPackageVersion) into the packages directory.
func restoreProject(id string) string {
	return fmt.Sprintf(`<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>netstandard2.0</TargetFramework>
    <MscaPackageVersion Condition="'$(MscaPackageVersion)' == ''">*</MscaPackageVersion>
  </PropertyGroup>
  <ItemGroup>
    <PackageReference Include="%s" Version="$(MscaPackageVersion)" />
  </ItemGroup>
</Project>
`, id)
}
