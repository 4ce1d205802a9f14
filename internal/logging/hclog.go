// Package logging adapts hclog to the baser.Logger interface.
package logging

import (
	"io"
	"os"
	"sort"

	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/hashicorp/go-hclog"
)

var _ baser.Logger = (*HCLogger)(nil)

// HCLogger forwards baser.Logger calls to an hclog.Logger.
type HCLogger struct {
	logger hclog.Logger
}

// New creates a logger writing to stderr. Verbose enables debug output.
func New(name string, verbose bool) *HCLogger {
	return NewWithOutput(name, verbose, os.Stderr)
}

// NewWithOutput creates a logger writing to output.
func NewWithOutput(name string, verbose bool, output io.Writer) *HCLogger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}

	return Wrap(hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: output,
	}))
}

// Wrap adapts an existing hclog.Logger. A nil logger discards everything.
func Wrap(logger hclog.Logger) *HCLogger {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &HCLogger{logger: logger}
}

// Debug implements baser.Logger.
func (l *HCLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, pairs(fields)...)
}

// Info implements baser.Logger.
func (l *HCLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, pairs(fields)...)
}

// Warn implements baser.Logger.
func (l *HCLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, pairs(fields)...)
}

// Error implements baser.Logger.
func (l *HCLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, pairs(fields)...)
}

// pairs flattens fields into hclog key/value arguments in key order.
func pairs(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]interface{}, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}
