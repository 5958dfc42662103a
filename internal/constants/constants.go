// Package constants centralizes shared defaults for the client and CLI.
package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP defaults.
const (
	// DefaultHTTPTimeout is the timeout applied to the default transport
	// when the caller does not inject one.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultUserAgent identifies the SDK on outgoing requests.
	DefaultUserAgent = "stofware-client-go"
)

// Success status window. Statuses outside [SuccessStatusMin,
// SuccessStatusMax] fail with a RequestError.
const (
	SuccessStatusMin = 200
	SuccessStatusMax = 399
)

// CLI defaults.
const (
	// StandardPageLimit is the default page size used by list commands.
	StandardPageLimit = 50
)
