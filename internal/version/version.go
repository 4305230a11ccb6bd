package version

// Version is the semantic version reported by --version.
const Version = "0.1.0"
