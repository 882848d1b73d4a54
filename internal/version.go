package internal

// Version is the current sightwords release.
const Version = "0.4.0"
