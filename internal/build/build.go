// Package build carries version metadata stamped in at link time.
package build

// Version is the release version. It stays "dev" for local builds and is
// overwritten by the release pipeline's linker flags.
var Version = "dev"

// Commit is the git revision the binary was built from.
var Commit = "none"

// Date is the build timestamp.
var Date = "unknown"
