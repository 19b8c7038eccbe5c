package version

// Version is the semantic version of the esp-terraform CLI.
const Version = "0.1.0"
