package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/casper-ecosystem/casper-client-go/casper/cmd/casper-client/common"
	"github.com/casper-ecosystem/casper-client-go/casper/common/check"
	"github.com/casper-ecosystem/casper-client-go/casper/common/logging"
	"github.com/casper-ecosystem/casper-client-go/casper/internal/types"
	"github.com/go-viper/encoding/ini"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	Section = "casper"

	NodeAddressField = "node_address"
	ChainNameField   = "chain_name"
	SecretKeyField   = "secret_key"
	RPCTimeoutField  = "rpc_timeout"

	envPrefix = "CASPER_"
	dotEnv    = ".env"
)

const InitConfigTemplate = `; Configuration of the Casper command line client
[casper]

; Specify the address of the node to send deploys to
; For example, if the node's RPC server listens on "http://127.0.0.1:7777", set it as below
; node_address = "http://127.0.0.1:7777"

; Specify the name of the chain deploys are created for
; chain_name = "casper-test"

; Specify the path of the PEM file used for signing deploys.
; You can generate a new key with "casper-client keygen <dir>".
; secret_key = "/path/to/secret_key.pem"

; Specify the timeout of a single RPC request, e.g. "30sec" or "1min"
; rpc_timeout = "30sec"
`

var (
	DefaultConfigPath string

	vp = newViper()
)

func init() {
	homeDir, err := os.UserHomeDir()
	check.PanicIfErr(err)

	DefaultConfigPath = filepath.Join(homeDir, ".config/casper-client/config.ini")
}

func newViper() *viper.Viper {
	codecs := viper.NewCodecRegistry()
	check.PanicIfErr(codecs.RegisterCodec("ini", ini.Codec{}))
	return viper.NewWithOptions(viper.WithCodecRegistry(codecs))
}

// Fields returns the supported keys of the [casper] section.
func Fields() []string {
	return []string{NodeAddressField, ChainNameField, SecretKeyField, RPCTimeoutField}
}

func InitDefaultConfig(configPath string) (string, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	dirPath := filepath.Dir(configPath)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(configPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	_, err = file.WriteString(InitConfigTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to write template to config file: %w", err)
	}
	return configPath, nil
}

// PatchConfig rewrites the given keys in place and appends the missing ones.
func PatchConfig(delta map[string]any) error {
	configPath := vp.ConfigFileUsed()
	if configPath == "" {
		// impossible, since we set the default in SetConfigFile
		panic("config file is not set")
	}
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			configPath, err = InitDefaultConfig(configPath)
		}
		if err != nil {
			return err
		}
	}

	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	result := strings.Builder{}
	first := true
	for _, line := range strings.Split(string(cfg), "\n") {
		if !first {
			result.WriteByte('\n')
		} else {
			first = false
		}
		key := strings.TrimSpace(strings.Split(line, "=")[0])
		if value, ok := delta[key]; ok {
			result.WriteString(iniEntry(key, value))
			delete(delta, key)
		} else {
			result.WriteString(line)
		}
	}
	if !strings.HasSuffix(result.String(), "\n") {
		result.WriteByte('\n')
	}
	for key, value := range delta {
		result.WriteString(iniEntry(key, value) + "\n")
	}
	return os.WriteFile(configPath, []byte(result.String()), 0o600)
}

// iniEntry quotes the value the way the ini reader unquotes it: surrounding
// double quotes are stripped and nothing inside is unescaped.
func iniEntry(key string, value any) string {
	return key + ` = "` + fmt.Sprint(value) + `"`
}

// SetConfigFile sets the config file for the viper
func SetConfigFile(cfgFile string) {
	vp.SetConfigType("ini")
	vp.SetConfigFile(cfgFile)
}

// bindEnv makes CASPER_<KEY> override the [casper] section. Variables from
// a .env file in the working directory are loaded first; the process
// environment wins over them.
func bindEnv() error {
	if _, err := os.Stat(dotEnv); err == nil {
		if err := godotenv.Load(dotEnv); err != nil {
			return fmt.Errorf("failed to load %s: %w", dotEnv, err)
		}
	}
	for _, field := range Fields() {
		if err := vp.BindEnv(Section+"."+field, envPrefix+strings.ToUpper(field)); err != nil {
			return err
		}
	}
	return nil
}

func decodeTimeDiff(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() == reflect.String && t == reflect.TypeOf(types.TimeDiff{}) {
		s, _ := data.(string)
		if s == "" {
			return types.TimeDiff{}, nil
		}
		return types.ParseTimeDiff(s)
	}
	return data, nil
}

func updateDecoderConfig(config *mapstructure.DecoderConfig) {
	config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		config.DecodeHook,
		decodeTimeDiff,
	)
}

func isNotFound(err error) bool {
	return errors.As(err, new(viper.ConfigFileNotFoundError)) || errors.Is(err, fs.ErrNotExist)
}

// LoadConfig loads the configuration from the config file
func LoadConfig(cfgFilePath string, logger logging.Logger) (*common.Config, error) {
	err := vp.ReadInConfig()

	// Create file if it doesn't exist
	if isNotFound(err) {
		logger.Info().Msg("Config file not found. Creating a new one...")

		path, errCfg := InitDefaultConfig(cfgFilePath)
		if errCfg != nil {
			logger.Error().Err(errCfg).Msg("Failed to create config")
			return nil, errCfg
		}

		logger.Info().Msgf("Config file created successfully at %s", path)
		logger.Info().Msgf("set via `%s config set <option> <value>` or via config file", os.Args[0])
		err = vp.ReadInConfig()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := bindEnv(); err != nil {
		return nil, err
	}

	var file struct {
		Casper common.Config `mapstructure:"casper"`
	}
	if err := vp.Unmarshal(&file, updateDecoderConfig); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	config := file.Casper

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	logger.Debug().Msg("Configuration loaded successfully")
	return &config, nil
}

// validateConfig perform some simple configuration validation
func validateConfig(config *common.Config) error {
	if config.NodeAddress == "" {
		return nil
	}
	u, err := url.Parse(config.NodeAddress)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", NodeAddressField, err)
	}
	switch u.Scheme {
	case "http", "https", "unix", "tcp":
		return nil
	default:
		return fmt.Errorf("invalid %s %q: unsupported scheme %q", NodeAddressField, config.NodeAddress, u.Scheme)
	}
}

// Get returns the value of a key of the [casper] section or nil.
func Get(key string) any {
	return vp.Get(Section + "." + key)
}

// Settings returns the [casper] section of the loaded file.
func Settings() map[string]any {
	section, _ := vp.AllSettings()[Section].(map[string]any)
	return section
}

func ConfigFileUsed() string {
	return vp.ConfigFileUsed()
}

func ReadInConfig() error {
	return vp.ReadInConfig()
}
