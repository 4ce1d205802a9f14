package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Viper keys shared by flags, environment variables and the config file.
const (
	KeyBaseURL           = "base_url"
	KeyEmail             = "email"
	KeyPassword          = "password"
	KeyAccessToken       = "access_token"
	KeySkipSSLValidation = "skip_ssl_validation"
	KeyOutput            = "output"
	KeyVerbose           = "verbose"
	KeyNATSURL           = "nats_url"
	KeySubjectPrefix     = "nats_subject_prefix"
	KeyConfig            = "config"
)

// Config represents the CLI configuration file. The password is never stored.
type Config struct {
	BaseURL           string `json:"base_url,omitempty"            yaml:"base_url,omitempty"`
	Email             string `json:"email,omitempty"               yaml:"email,omitempty"`
	AccessToken       string `json:"access_token,omitempty"        yaml:"access_token,omitempty"`
	SkipSSLValidation bool   `json:"skip_ssl_validation"           yaml:"skip_ssl_validation"`
	Output            string `json:"output,omitempty"              yaml:"output,omitempty"`
	NATSURL           string `json:"nats_url,omitempty"            yaml:"nats_url,omitempty"`
	SubjectPrefix     string `json:"nats_subject_prefix,omitempty" yaml:"nats_subject_prefix,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage baser CLI configuration including the target site and output settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration from flags, environment and config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			out := cmd.OutOrStdout()

			switch viper.GetString(KeyOutput) {
			case constants.FormatJSON:
				return renderJSON(out, maskConfig(config))
			case constants.FormatYAML:
				return renderYAML(out, maskConfig(config))
			default:
				return displayConfigTable(out, config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value in the config file. Keys: " + joinKeys(),
		Args:  cobra.ExactArgs(constants.TwoArgumentsRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			path := configFilePath()

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = writeConfigFile(path, config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			path := configFilePath()

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			if key == KeyAccessToken {
				config.AccessToken = ""
			} else {
				err = setConfigValue(config, key, "")
				if err != nil {
					return err
				}
			}

			err = writeConfigFile(path, config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

// loadConfig returns the effective configuration: flags, then environment,
// then the config file.
func loadConfig() *Config {
	return &Config{
		BaseURL:           viper.GetString(KeyBaseURL),
		Email:             viper.GetString(KeyEmail),
		AccessToken:       viper.GetString(KeyAccessToken),
		SkipSSLValidation: viper.GetBool(KeySkipSSLValidation),
		Output:            viper.GetString(KeyOutput),
		NATSURL:           viper.GetString(KeyNATSURL),
		SubjectPrefix:     viper.GetString(KeySubjectPrefix),
	}
}

// configFilePath returns the config file in use, or the default location.
func configFilePath() string {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile
	}

	if configFile := viper.GetString(KeyConfig); configFile != "" {
		return configFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(constants.ConfigDirName, constants.ConfigFileName)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName)
}

// readConfigFile loads the config file at path. A missing file yields an
// empty config.
func readConfigFile(path string) (*Config, error) {
	config := &Config{}

	// path comes from the --config flag or the user's home directory
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// writeConfigFile saves config to path, creating the directory if needed.
func writeConfigFile(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// configHandlers maps settable keys to their setters.
var configHandlers = map[string]func(*Config, string){
	KeyBaseURL:           func(c *Config, v string) { c.BaseURL = v },
	KeyEmail:             func(c *Config, v string) { c.Email = v },
	KeySkipSSLValidation: func(c *Config, v string) { c.SkipSSLValidation = parseBoolValue(v) },
	KeyOutput:            func(c *Config, v string) { c.Output = v },
	KeyNATSURL:           func(c *Config, v string) { c.NATSURL = v },
	KeySubjectPrefix:     func(c *Config, v string) { c.SubjectPrefix = v },
}

func setConfigValue(config *Config, key, value string) error {
	if key == KeyAccessToken {
		return constants.ErrTokenCannotBeSet
	}

	handler, exists := configHandlers[key]
	if !exists {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	handler(config, value)

	return nil
}

func parseBoolValue(value string) bool {
	parsed, err := strconv.ParseBool(value)

	return err == nil && parsed
}

func joinKeys() string {
	keys := make([]string, 0, len(configHandlers))
	for key := range configHandlers {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return strings.Join(keys, ", ")
}

func maskConfig(config *Config) *Config {
	masked := *config
	if masked.AccessToken != "" {
		masked.AccessToken = constants.MaskedSecret
	}

	return &masked
}

func displayConfigTable(out io.Writer, config *Config) error {
	masked := maskConfig(config)

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Base URL", formatConfigValue(masked.BaseURL)})
	_ = table.Append([]string{"Email", formatConfigValue(masked.Email)})
	_ = table.Append([]string{"Access Token", formatConfigValue(masked.AccessToken)})
	_ = table.Append([]string{"Skip SSL Validation", strconv.FormatBool(masked.SkipSSLValidation)})
	_ = table.Append([]string{"Output", formatConfigValue(masked.Output)})
	_ = table.Append([]string{"NATS URL", formatConfigValue(masked.NATSURL)})
	_ = table.Append([]string{"NATS Subject Prefix", formatConfigValue(masked.SubjectPrefix)})
	_ = table.Append([]string{"Config File", configFilePath()})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatConfigValue(value string) string {
	if value == "" {
		return "-"
	}

	return value
}
