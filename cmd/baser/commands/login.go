package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	"github.com/fivetwenty-io/baser-client/internal/logging"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/fivetwenty-io/baser-client/pkg/baserclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a baserCMS site",
		Long:  "Authenticate with a baserCMS site and store the issued access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL := viper.GetString(KeyBaseURL)
			if baseURL == "" {
				reader := bufio.NewReader(os.Stdin)
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Base URL: ")
				baseURL, _ = reader.ReadString('\n')
				baseURL = strings.TrimSpace(baseURL)
			}

			if baseURL == "" {
				return constants.ErrNoBaseURL
			}

			if email == "" {
				email = viper.GetString(KeyEmail)
			}

			if email == "" {
				reader := bufio.NewReader(os.Stdin)
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				email, _ = reader.ReadString('\n')
				email = strings.TrimSpace(email)
			}

			if email == "" {
				return constants.ErrEmailRequired
			}

			if password == "" {
				password = viper.GetString(KeyPassword)
			}

			if password == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}

			if password == "" {
				return constants.ErrPasswordRequired
			}

			return runLogin(cmd, baseURL, email, password)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "u", "", "email of the API user")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password of the API user")

	return cmd
}

func runLogin(cmd *cobra.Command, baseURL, email, password string) error {
	verbose := viper.GetBool(KeyVerbose)
	persister := NewConfigPersister(configFilePath())

	client, err := baserclient.New(cmd.Context(), &baser.Config{
		BaseURL:       baseURL,
		SkipTLSVerify: viper.GetBool(KeySkipSSLValidation),
		Debug:         verbose,
		Logger:        logging.New(constants.LoggerName, verbose),
	}, baserclient.WithTokenPersister(persister))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	_, err = client.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("failed to login: %w", err)
	}

	config, err := readConfigFile(persister.path)
	if err != nil {
		return err
	}

	config.Email = email

	err = writeConfigFile(persister.path, config)
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully logged in to %s as %s\n", config.BaseURL, email)

	return nil
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the baserCMS site",
		Long:  "Remove the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := NewConfigPersister(configFilePath()).ClearToken()
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")

			return nil
		},
	}
}
