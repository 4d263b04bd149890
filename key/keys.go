// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Source Registry - these keys manage the registration and selection of content sources.
const (
	SourcesDefault = "sources.default"
)

// Search Pipeline - these keys bound the fan-out search stage.
const (
	SearchTimeout  = "search.timeout"
	SearchPageSize = "search.page_size"
)

// Verification Pipeline - these keys govern the availability-probe stage.
const (
	VerifyEnabled     = "verify.enabled"
	VerifyConcurrency = "verify.concurrency"
	VerifyTimeout     = "verify.timeout"
)

// HTTP Server - these keys configure the service surface exposed to the web client.
const (
	ServerHost             = "server.host"
	ServerPort             = "server.port"
	ServerCORSAllowOrigins = "server.cors_allow_origins"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-server application behavior.
const (
	CliColored = "cli.colored"
)
