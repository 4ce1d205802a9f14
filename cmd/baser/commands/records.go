package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// recordFlags are shared by every record command.
type recordFlags struct {
	admin  bool
	query  []string
	fields []string
	files  []string
}

// addRead registers the read flags. Writes always use the admin API and
// send no query string.
func (f *recordFlags) addRead(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.admin, "admin", false, "use the admin API")
	cmd.Flags().StringArrayVarP(&f.query, "query", "q", nil, "query parameter as key=value (repeatable)")
}

func (f *recordFlags) addPayload(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.fields, "field", "f", nil, "record field as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.files, "file", nil, "file field as key=path, sent as multipart (repeatable)")
}

// options builds the call options from --admin and --query.
func (f *recordFlags) options() (baser.Options, error) {
	query, err := parseKeyValues(f.query)
	if err != nil {
		return nil, err
	}

	opts := baser.Options{}
	for key, value := range query {
		opts[key] = value
	}

	if f.admin {
		opts[baser.AdminOption] = true
	}

	return opts, nil
}

// payload builds the request record from --field and --file.
func (f *recordFlags) payload() (baser.Record, error) {
	fields, err := parseKeyValues(f.fields)
	if err != nil {
		return nil, err
	}

	record := baser.Record{}
	for key, value := range fields {
		record[key] = value
	}

	files, err := parseKeyValues(f.files)
	if err != nil {
		return nil, err
	}

	for key, path := range files {
		// path is supplied by the user on the command line
		// #nosec G304
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file for field %q: %w", key, err)
		}

		record[key] = baser.NewFile(filepath.Base(path), data)
	}

	return record, nil
}

// parseKeyValues splits key=value pairs. A later key wins.
func parseKeyValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFieldFormat, pair)
		}

		values[key] = value
	}

	return values, nil
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	flags := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "list ENDPOINT",
		Short: "List records",
		Long:  "List the records of an endpoint. See 'baser endpoints' for names.",
		Args:  cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordCommand(cmd, baser.OpList, args[0], "", flags)
		},
	}

	flags.addRead(cmd)

	return cmd
}

// NewGetCommand creates the get command
func NewGetCommand() *cobra.Command {
	flags := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "get ENDPOINT ID",
		Short: "Show a record",
		Long:  "Show a single record of an endpoint",
		Args:  cobra.ExactArgs(constants.TwoArgumentsRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordCommand(cmd, baser.OpView, args[0], args[1], flags)
		},
	}

	flags.addRead(cmd)

	return cmd
}

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	flags := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "add ENDPOINT",
		Short: "Create a record",
		Long: `Create a record. Fields are given with --field key=value; files with
--file key=path switch the request to multipart/form-data.`,
		Example: `  baser add blogPosts --field blog_content_id=1 --field title=Hello --file eye_catch=./cat.png`,
		Args:    cobra.ExactArgs(constants.OneArgumentRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordCommand(cmd, baser.OpAdd, args[0], "", flags)
		},
	}

	flags.addPayload(cmd)

	return cmd
}

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	flags := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "edit ENDPOINT ID",
		Short: "Update a record",
		Long:  "Update a record with the given --field and --file values",
		Args:  cobra.ExactArgs(constants.TwoArgumentsRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordCommand(cmd, baser.OpEdit, args[0], args[1], flags)
		},
	}

	flags.addPayload(cmd)

	return cmd
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	flags := &recordFlags{}

	cmd := &cobra.Command{
		Use:   "delete ENDPOINT ID",
		Short: "Delete a record",
		Long:  "Delete a single record of an endpoint",
		Args:  cobra.ExactArgs(constants.TwoArgumentsRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordCommand(cmd, baser.OpDelete, args[0], args[1], flags)
		},
	}

	flags.addPayload(cmd)

	return cmd
}

func runRecordCommand(cmd *cobra.Command, op baser.Operation, endpoint, id string, flags *recordFlags) error {
	opts, err := flags.options()
	if err != nil {
		return err
	}

	var payload baser.Record
	if op.IsWrite() {
		payload, err = flags.payload()
		if err != nil {
			return err
		}
	}

	client, cleanup, err := CreateClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	record, err := client.Dispatch(cmd.Context(), op, &baser.CallRequest{
		Endpoint: endpoint,
		ID:       id,
		Payload:  payload,
		Options:  opts,
	})
	if err != nil {
		return describeError(err)
	}

	return renderRecord(cmd.OutOrStdout(), record, viper.GetString(KeyOutput))
}

// describeError adds the remote field errors to a validation failure.
func describeError(err error) error {
	fields, ok := baser.ValidationErrors(err)
	if !ok || len(fields) == 0 {
		return err
	}

	lines := make([]string, 0, len(fields))
	for _, field := range sortedKeys(fields) {
		lines = append(lines, fmt.Sprintf("  %s: %s", field, formatCell(fields[field])))
	}

	return fmt.Errorf("%w\n%s", err, strings.Join(lines, "\n"))
}
