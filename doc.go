/*
Package msca installs and pins a versioned command-line tool distributed as a
NuGet package (by default the Microsoft Security Code Analysis CLI) for use in
CI build steps.

Packages are restored with "dotnet restore" into

	<root>/versions/<package id, lowercased>/<version>/tools/<executable>

and version directories are matched against the grammar

	^(\d+\.?){1,6}(-\w+)?$

i.e. one to six numeric groups and an optional single "-tag" pre-release suffix.
Anything else in the versions directory is ignored.

Typical flow:

 1. An exact version that is already on disk is returned as-is (no fetch).
 2. Otherwise the package is fetched, retrying up to three attempts in total.
    Fetch failures are logged, not returned.
 3. A wildcard ("*", "latest", "1.*") resolves to the latest directory on disk.
    Pre-release directories are only considered with ChannelPreRelease.
 4. The selected tools directory must exist, otherwise ErrNotInstalled.

Ordering notes:
  - Numeric segments compare left to right, missing segments count as 0,
    so "1.0" and "1.0.0" are equal.
  - At equal numbers a stable version is newer than a pre-release.
  - Two pre-releases at equal numbers compare by plain string order of the
    tag ("beta10" < "beta2").

Usage example:

	res, err := msca.Install(ctx, msca.Options{
		Version: "*",                   // latest stable
		Root:    "/agent/_msca",        // <root>/versions is the restore target
		Channel: msca.ChannelStable,    // ignore "-beta" style directories
	})
	if err != nil {
		return err
	}

	// export MSCA_DIRECTORY / MSCA_FILEPATH / MSCA_VERSION to later steps
	err = msca.PublishInstallation(res, msca.Publishers(msca.PublishAuto, os.Getenv, os.Stdout)...)

The selection core is usable on its own:

	latest, ok := msca.SelectLatest([]string{"1.0.0", "1.2.0", "1.1.9"}, false)
	fmt.Println(latest, ok) // 1.2.0 true
*/
package msca
