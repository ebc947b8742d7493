package pkg

// Version is the version of the build, overridden at build time
var Version = "latest"

// Commit is the git commit of the build, overridden at build time
var Commit = "unknown"
