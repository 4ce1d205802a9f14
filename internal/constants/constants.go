package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultBatchConcurrency is the number of batch calls in flight.
	DefaultBatchConcurrency = 5
)

// baserCMS REST API paths.
const (
	// APIRoot is the prefix of every API path.
	APIRoot = "/baser/api"

	// AdminSegment selects the admin API surface.
	AdminSegment = "/admin"

	// LoginPath is the fixed path of the token endpoint.
	LoginPath = APIRoot + AdminSegment + "/baser-core/users/login.json"

	// ActionSuffix terminates every action path.
	ActionSuffix = ".json"

	// AccessTokenField is the login response field holding the token.
	AccessTokenField = "access_token"

	// ErrorsField is the response field holding validation errors.
	ErrorsField = "errors"

	// MessageField is the response field holding a human readable message.
	MessageField = "message"

	// BlogFilesPath is the public location of blog uploads.
	BlogFilesPath = "/files/blog"
)

// Request headers.
const (
	// HeaderRequestedWith marks requests as XHR so the API answers in JSON.
	HeaderRequestedWith = "X-Requested-With"

	// RequestedWithXHR is the value of HeaderRequestedWith.
	RequestedWithXHR = "XMLHttpRequest"

	// ContentTypeJSON is the content type of JSON bodies.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent identifies the client.
	DefaultUserAgent = "baser-client/1.0"
)

// Event subjects.
const (
	// DefaultSubjectPrefix is the NATS subject prefix for change events.
	DefaultSubjectPrefix = "baser"
)

// CLI configuration.
const (
	// ConfigDirName is the directory under the user's home holding the CLI config.
	ConfigDirName = ".baser"

	// ConfigFileName is the CLI config file name.
	ConfigFileName = "config.yml"

	// EnvPrefix prefixes every CLI environment variable.
	EnvPrefix = "BASER"

	// LoggerName names the CLI logger.
	LoggerName = "baser"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// StringTruncationLength is the default length for truncating strings.
	StringTruncationLength = 60

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Command argument counts.
const (
	// OneArgumentRequired indicates commands requiring exactly one argument.
	OneArgumentRequired = 1

	// TwoArgumentsRequired indicates commands requiring exactly two arguments.
	TwoArgumentsRequired = 2
)
