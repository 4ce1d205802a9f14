package commands

import (
	"fmt"
	"io"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewEndpointsCommand creates the endpoints command
func NewEndpointsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List API endpoints",
		Long:  "List the endpoint names accepted by the record commands and the API paths they map to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderRoutes(cmd.OutOrStdout(), baser.DefaultRoutes(), viper.GetString(KeyOutput))
		},
	}
}

func renderRoutes(out io.Writer, routes *baser.RouteRegistry, format string) error {
	switch format {
	case constants.FormatJSON:
		return renderJSON(out, routes.Routes())
	case constants.FormatYAML:
		return renderYAML(out, routes.Routes())
	}

	table := tablewriter.NewWriter(out)
	table.Header("Name", "Plugin", "Controller", "Path")

	for _, route := range routes.Routes() {
		_ = table.Append([]string{
			route.Name,
			route.Plugin,
			route.Controller,
			fmt.Sprintf("%s/%s/%s/", constants.APIRoot, route.Plugin, route.Controller),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
