package deploy

// Flag names as they appear in error messages. They match the CLI flags.
const (
	SessionPrefix = "session"
	PaymentPrefix = "payment"

	TransferFlag      = "is-session-transfer"
	PaymentAmountFlag = "payment-amount"

	PathSuffix        = "path"
	HashSuffix        = "hash"
	NameSuffix        = "name"
	PackageHashSuffix = "package-hash"
	PackageNameSuffix = "package-name"
	EntryPointSuffix  = "entry-point"
	VersionSuffix     = "version"
	ArgSuffix         = "arg"
	ArgsComplexSuffix = "args-complex"
)

// FlagName returns the CLI flag for a source field, e.g. FlagName(SessionPrefix, "hash").
func FlagName(prefix, suffix string) string {
	return prefix + "-" + suffix
}

// SourceOptions holds the code source fields shared by session and payment.
// A nil pointer means the flag was not given.
type SourceOptions struct {
	Path        *string
	Hash        *string
	Name        *string
	PackageHash *string
	PackageName *string

	EntryPoint string
	Version    *string

	// Args are raw "NAME:TYPE='VALUE'" strings.
	Args        []string
	ArgsComplex *string
}

type SessionOptions struct {
	SourceOptions

	Transfer bool
}

type PaymentOptions struct {
	SourceOptions

	StandardAmount *string
}
