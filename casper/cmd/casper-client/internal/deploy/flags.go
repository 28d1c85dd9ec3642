package deploy

import (
	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	libdeploy "github.com/casper-ecosystem/casper-client-go/casper/internal/deploy"
	"github.com/casper-ecosystem/casper-client-go/casper/services/cliservice"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	showArgExamplesFlag    = "show-arg-examples"
	secretKeyFlag          = "secret-key"
	sessionAccountFlag     = "session-account"
	timestampFlag          = "timestamp"
	ttlFlag                = "ttl"
	chainNameFlag          = "chain-name"
	gasPriceFlag           = "gas-price"
	dependencyFlag         = "dependency"
	nodeAddressFlag        = "node-address"
	idFlag                 = "id"
	outputFlag             = "output"
	inputFlag              = "input"
	forceFlag              = "force"
	finalizedApprovalsFlag = "finalized-approvals"
)

type sourceFlags struct {
	prefix string

	path        string
	hash        string
	name        string
	packageHash string
	packageName string
	entryPoint  string
	version     string
	args        []string
	argsComplex string
}

func (s *sourceFlags) register(flags *pflag.FlagSet, argShorthand string) {
	flag := func(suffix string) string { return libdeploy.FlagName(s.prefix, suffix) }

	flags.StringVar(&s.path, flag(libdeploy.PathSuffix), "", "Path to the "+s.prefix+" Wasm module")
	flags.StringVar(&s.hash, flag(libdeploy.HashSuffix), "", "Hex-encoded hash of the stored "+s.prefix+" contract")
	flags.StringVar(&s.name, flag(libdeploy.NameSuffix), "", "Name of the stored "+s.prefix+" contract in the caller's named keys")
	flags.StringVar(&s.packageHash, flag(libdeploy.PackageHashSuffix), "", "Hex-encoded hash of the stored "+s.prefix+" contract package")
	flags.StringVar(&s.packageName, flag(libdeploy.PackageNameSuffix), "", "Name of the stored "+s.prefix+" contract package in the caller's named keys")
	flags.StringVar(&s.entryPoint, flag(libdeploy.EntryPointSuffix), "", "Entry point of the stored "+s.prefix+" contract")
	flags.StringVar(&s.version, flag(libdeploy.VersionSuffix), "", "Version of the stored "+s.prefix+" contract package, latest if absent")
	flags.StringArrayVarP(&s.args, flag(libdeploy.ArgSuffix), argShorthand, nil,
		"Named and typed "+s.prefix+" argument NAME:TYPE='VALUE', may be repeated. See --"+showArgExamplesFlag)
	flags.StringVar(&s.argsComplex, flag(libdeploy.ArgsComplexSuffix), "", "Path to a file holding bytesrepr-encoded "+s.prefix+" runtime args")
}

// sources lists the flags that select the code source, in resolution order.
func (s *sourceFlags) sources() []string {
	suffixes := []string{
		libdeploy.PathSuffix,
		libdeploy.HashSuffix,
		libdeploy.NameSuffix,
		libdeploy.PackageHashSuffix,
		libdeploy.PackageNameSuffix,
	}
	flags := make([]string, len(suffixes))
	for i, suffix := range suffixes {
		flags[i] = libdeploy.FlagName(s.prefix, suffix)
	}
	return flags
}

func (s *sourceFlags) options(flags *pflag.FlagSet) libdeploy.SourceOptions {
	given := func(suffix string, value string) *string {
		if !flags.Changed(libdeploy.FlagName(s.prefix, suffix)) {
			return nil
		}
		return &value
	}
	return libdeploy.SourceOptions{
		Path:        given(libdeploy.PathSuffix, s.path),
		Hash:        given(libdeploy.HashSuffix, s.hash),
		Name:        given(libdeploy.NameSuffix, s.name),
		PackageHash: given(libdeploy.PackageHashSuffix, s.packageHash),
		PackageName: given(libdeploy.PackageNameSuffix, s.packageName),
		EntryPoint:  s.entryPoint,
		Version:     given(libdeploy.VersionSuffix, s.version),
		Args:        s.args,
		ArgsComplex: given(libdeploy.ArgsComplexSuffix, s.argsComplex),
	}
}

// creationFlags are the flags shared by put-deploy and make-deploy.
type creationFlags struct {
	showArgExamples bool

	secretKey      string
	sessionAccount string
	timestamp      string
	ttl            string
	chainName      string
	gasPrice       uint64
	dependencies   []string

	session       sourceFlags
	transfer      bool
	payment       sourceFlags
	paymentAmount string
}

func registerCreationFlags(cmd *cobra.Command) *creationFlags {
	f := &creationFlags{
		session: sourceFlags{prefix: libdeploy.SessionPrefix},
		payment: sourceFlags{prefix: libdeploy.PaymentPrefix},
	}
	flags := cmd.Flags()

	flags.BoolVarP(&f.showArgExamples, showArgExamplesFlag, "e", false,
		"Print examples of --session-arg and --payment-arg values and exit")
	flags.StringVarP(&f.secretKey, secretKeyFlag, "k", "", "Path to the PEM secret key used to sign the deploy")
	flags.StringVar(&f.sessionAccount, sessionAccountFlag, "",
		"Hex-encoded public key of the account context, or a path to a public_key_hex file. Defaults to the signer")
	flags.StringVar(&f.timestamp, timestampFlag, "", "Creation time of the deploy in RFC3339 format, e.g. 2018-02-16T00:31:37Z. Defaults to now")
	flags.StringVar(&f.ttl, ttlFlag, libdeploy.DefaultTTL, "Time to live of the deploy, e.g. 30min, 1hr 12min, 1day")
	flags.StringVar(&f.chainName, chainNameFlag, "", "Name of the chain the deploy is created for")
	flags.Uint64Var(&f.gasPrice, gasPriceFlag, libdeploy.DefaultGasPrice, "Gas price in motes per unit of gas")
	flags.StringArrayVar(&f.dependencies, dependencyFlag, nil, "Hex-encoded hash of a deploy that must execute first, may be repeated")

	f.session.register(flags, "a")
	flags.BoolVar(&f.transfer, libdeploy.TransferFlag, false, "Use the native transfer as the session code")

	f.payment.register(flags, "")
	flags.StringVarP(&f.paymentAmount, libdeploy.PaymentAmountFlag, "p", "", "Amount of motes to pay with the standard payment")

	cmd.MarkFlagsMutuallyExclusive(append(f.session.sources(), libdeploy.TransferFlag)...)
	cmd.MarkFlagsMutuallyExclusive(append([]string{libdeploy.PaymentAmountFlag}, f.payment.sources()...)...)
	for _, s := range []*sourceFlags{&f.session, &f.payment} {
		cmd.MarkFlagsMutuallyExclusive(
			libdeploy.FlagName(s.prefix, libdeploy.ArgSuffix),
			libdeploy.FlagName(s.prefix, libdeploy.ArgsComplexSuffix),
		)
	}
	return f
}

// input converts the flags into service input. Values missing from the
// command line are taken from cfg.
func (f *creationFlags) input(flags *pflag.FlagSet, cfg *common.Config) cliservice.DeployInput {
	in := cliservice.DeployInput{
		Session: libdeploy.SessionOptions{
			SourceOptions: f.session.options(flags),
			Transfer:      f.transfer,
		},
		Payment: libdeploy.PaymentOptions{
			SourceOptions: f.payment.options(flags),
		},
		SecretKey:      f.secretKey,
		SessionAccount: f.sessionAccount,
		Timestamp:      f.timestamp,
		TTL:            f.ttl,
		ChainName:      f.chainName,
		GasPrice:       f.gasPrice,
		Dependencies:   f.dependencies,
	}
	if flags.Changed(libdeploy.PaymentAmountFlag) {
		in.Payment.StandardAmount = &f.paymentAmount
	}

	if !flags.Changed(chainNameFlag) && cfg != nil {
		in.ChainName = cfg.ChainName
	}
	if !flags.Changed(secretKeyFlag) && !flags.Changed(sessionAccountFlag) && cfg != nil {
		in.SecretKey = cfg.SecretKey
	}
	return in
}

// nodeFlags select the node and the JSON-RPC id.
type nodeFlags struct {
	nodeAddress string
	id          string
}

func registerNodeFlags(cmd *cobra.Command) *nodeFlags {
	f := &nodeFlags{}
	cmd.Flags().StringVarP(&f.nodeAddress, nodeAddressFlag, "n", common.DefaultNodeAddress, "Address of the node's RPC server")
	cmd.Flags().StringVar(&f.id, idFlag, "", "JSON-RPC identifier of the request. A random one is used if absent")
	return f
}

// config returns cfg with the node address of the command line applied.
func (f *nodeFlags) config(flags *pflag.FlagSet, cfg *common.Config) *common.Config {
	res := common.Config{}
	if cfg != nil {
		res = *cfg
	}
	if flags.Changed(nodeAddressFlag) || res.NodeAddress == "" {
		res.NodeAddress = f.nodeAddress
	}
	return &res
}
