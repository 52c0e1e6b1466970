package buildinfo

// Build information populated via -ldflags at build time by CI.
// Defaults are meaningful for local development and tests.
var (
    // Version is the semantic version of the built binary.
    Version = "0.0.0-dev"
    // Commit is the VCS commit SHA associated with the build.
    Commit  = "unknown"
    // Date is the ISO-8601 timestamp of the build.
    Date    = "unknown"
)

// String renders the build information on one line for -version output.
func String() string {
    return Version + " (" + Commit + ", " + Date + ")"
}
