// Package recipebox holds build metadata for the recipebox binary.
package recipebox

// Version is the release version, overridable at build time with
// -ldflags "-X github.com/PikeCameron/recipebox/pkg/recipebox.Version=...".
var Version = "v0.1.0"
