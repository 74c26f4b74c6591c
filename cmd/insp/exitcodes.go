package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable config, invalid values)
	ExitNotFound    = 3 // Author or record not found on INSPIRE
	ExitAPIError    = 4 // INSPIRE unreachable, rate limited or circuit open
	ExitDataError   = 5 // Malformed record or snapshot
)
