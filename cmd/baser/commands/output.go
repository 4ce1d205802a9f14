package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// maxTableColumns bounds the columns of a list table.
const maxTableColumns = 6

// renderJSON writes data as indented JSON.
func renderJSON(out io.Writer, data interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// renderYAML writes data as YAML.
func renderYAML(out io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// renderRecord writes an API response in format. Tables show the first list
// found in the response, or else the first entity, or else every scalar
// field.
func renderRecord(out io.Writer, record baser.Record, format string) error {
	switch format {
	case constants.FormatJSON:
		return renderJSON(out, record)
	case constants.FormatYAML:
		return renderYAML(out, record)
	case constants.FormatTable, "":
		return renderRecordTable(out, record)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

func renderRecordTable(out io.Writer, record baser.Record) error {
	if message, ok := record[constants.MessageField].(string); ok && message != "" {
		_, _ = fmt.Fprintln(out, message)
	}

	for _, key := range sortedKeys(record) {
		if rows, ok := asRows(record[key]); ok {
			return renderRowsTable(out, rows)
		}
	}

	for _, key := range sortedKeys(record) {
		if entity, ok := record[key].(map[string]interface{}); ok && key != constants.ErrorsField {
			return renderPropertyTable(out, entity)
		}
	}

	scalars := map[string]interface{}{}

	for key, value := range record {
		if key != constants.MessageField && isScalar(value) {
			scalars[key] = value
		}
	}

	if len(scalars) == 0 {
		return nil
	}

	return renderPropertyTable(out, scalars)
}

func renderRowsTable(out io.Writer, rows []map[string]interface{}) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(out, "No records found")

		return nil
	}

	columns := tableColumns(rows[0])

	header := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		header = append(header, headerTitle(column))
	}

	table := tablewriter.NewWriter(out)
	table.Header(header...)

	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, column := range columns {
			cells = append(cells, formatCell(row[column]))
		}

		_ = table.Append(cells)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderPropertyTable(out io.Writer, entity map[string]interface{}) error {
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	for _, key := range sortedKeys(entity) {
		_ = table.Append([]string{headerTitle(key), formatCell(entity[key])})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// tableColumns picks the scalar columns of row, id first.
func tableColumns(row map[string]interface{}) []string {
	columns := []string{}
	if _, ok := row["id"]; ok {
		columns = append(columns, "id")
	}

	for _, key := range sortedKeys(row) {
		if len(columns) >= maxTableColumns {
			break
		}

		if key == "id" || !isScalar(row[key]) {
			continue
		}

		columns = append(columns, key)
	}

	return columns
}

func asRows(value interface{}) ([]map[string]interface{}, bool) {
	items, ok := value.([]interface{})
	if !ok {
		return nil, false
	}

	rows := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		row, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}

		rows = append(rows, row)
	}

	return rows, true
}

func isScalar(value interface{}) bool {
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		return false
	default:
		return true
	}
}

func headerTitle(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

func formatCell(value interface{}) string {
	if value == nil {
		return constants.NotAvailable
	}

	text, err := baser.FormValue(value)
	if err != nil {
		text = fmt.Sprint(value)
	}

	text = strings.ReplaceAll(text, "\n", " ")
	if len([]rune(text)) > constants.StringTruncationLength {
		text = string([]rune(text)[:constants.StringTruncationLength]) + "..."
	}

	return text
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
