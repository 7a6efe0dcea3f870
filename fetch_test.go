package msca

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDotnetFetcher_SplitsArgs(t *testing.T) {
	t.Parallel()

	f, err := NewDotnetFetcher(Options{
		FetchArgs: `--configfile "/etc/nuget/My Config.xml" --no-cache`,
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewDotnetFetcher: %v", err)
	}

	want := []string{"--configfile", "/etc/nuget/My Config.xml", "--no-cache"}
	if diff := cmp.Diff(want, f.ExtraArgs); diff != "" {
		t.Fatalf("ExtraArgs mismatch (-want +got):\n%s", diff)
	}
	if f.Dotnet != "dotnet" {
		t.Fatalf("Dotnet = %q; want dotnet", f.Dotnet)
	}
}

func TestNewDotnetFetcher_BadQuoting(t *testing.T) {
	t.Parallel()

	if _, err := NewDotnetFetcher(Options{FetchArgs: `--source "unterminated`}); err == nil {
		t.Fatal("want error for unterminated quote")
	}
}

func TestRestoreArgs(t *testing.T) {
	t.Parallel()

	f := &DotnetFetcher{ExtraArgs: []string{"--verbosity", "quiet"}}
	got := f.restoreArgs("/tmp/x/msca-task-lib.proj", FetchRequest{
		PackageID:   DefaultPackageID,
		Version:     "*",
		PackagesDir: "/agent/_msca/versions",
		Source:      DefaultSource,
	})

	want := []string{
		"restore", "/tmp/x/msca-task-lib.proj",
		"/p:MscaPackageVersion=*",
		"--packages", "/agent/_msca/versions",
		"--source", DefaultSource,
		"--verbosity", "quiet",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("restoreArgs mismatch (-want +got):\n%s", diff)
	}
}

func TestRestoreProject(t *testing.T) {
	t.Parallel()

	p := restoreProject("Contoso.Tool")
	for _, want := range []string{
		`<PackageReference Include="Contoso.Tool" Version="$(MscaPackageVersion)" />`,
		`<Project Sdk="Microsoft.NET.Sdk">`,
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("project missing %q:\n%s", want, p)
		}
	}
}

func TestDotnetFetcher_RejectsBadPackageID(t *testing.T) {
	t.Parallel()

	f := &DotnetFetcher{Logger: quietLogger()}
	err := f.Fetch(context.Background(), FetchRequest{PackageID: `bad"id`, Version: "1.0.0"})
	if err == nil {
		t.Fatal("want error for invalid package id")
	}
}

func TestDotnetFetcher_RunsBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for dotnet")
	}
	t.Parallel()

	// stand-in dotnet that records its arguments
	dir := t.TempDir()
	record := filepath.Join(dir, "args")
	script := filepath.Join(dir, "dotnet")
	body := "#!/bin/sh\nprintf '%s\\n' \"$@\" > " + record + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	f := &DotnetFetcher{Dotnet: script, Logger: quietLogger()}
	err := f.Fetch(context.Background(), FetchRequest{
		PackageID:   DefaultPackageID,
		Version:     "1.2.3",
		PackagesDir: filepath.Join(dir, "versions"),
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 || lines[0] != "restore" || lines[2] != "/p:MscaPackageVersion=1.2.3" {
		t.Fatalf("unexpected args: %q", lines)
	}
}

func TestDotnetFetcher_FailingBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for dotnet")
	}
	t.Parallel()

	dir := t.TempDir()
	script := filepath.Join(dir, "dotnet")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho nope >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	f := &DotnetFetcher{Dotnet: script, Logger: quietLogger()}
	err := f.Fetch(context.Background(), FetchRequest{PackageID: DefaultPackageID, Version: "1.0.0", PackagesDir: dir})
	if err == nil || !strings.Contains(err.Error(), "restore "+DefaultPackageID+" 1.0.0") {
		t.Fatalf("err = %v; want wrapped restore error", err)
	}
}
