package baser

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"time"
)

// Record is a decoded JSON object as returned by the baserCMS API, or a set of
// fields to send to it.
type Record map[string]interface{}

// Options are per-call request options. The reserved AdminOption key selects
// the admin path prefix; every other key is sent as a query parameter.
type Options map[string]interface{}

// AdminOption is the reserved option key that routes a call to the admin API.
const AdminOption = "admin"

// Operation identifies one of the five actions a route supports.
type Operation int

const (
	OpList Operation = iota
	OpView
	OpAdd
	OpEdit
	OpDelete
)

// String returns the action name used in request paths and change events.
func (o Operation) String() string {
	switch o {
	case OpList:
		return "index"
	case OpView:
		return "view"
	case OpAdd:
		return "add"
	case OpEdit:
		return "edit"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// IsWrite reports whether the operation mutates a record.
func (o Operation) IsWrite() bool {
	return o == OpAdd || o == OpEdit || o == OpDelete
}

// NeedsID reports whether the operation addresses a single record.
func (o Operation) NeedsID() bool {
	return o == OpView || o == OpEdit || o == OpDelete
}

// CallRequest describes one API call.
type CallRequest struct {
	Endpoint string
	ID       string
	Payload  Record
	Options  Options
}

// Clone returns a copy with independent Options.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}

	out := make(Options, len(o))
	for key, value := range o {
		out[key] = value
	}

	return out
}

// Merge returns a copy of base overlaid with o. Keys in o win.
func (o Options) Merge(base Options) Options {
	out := base.Clone()
	for key, value := range o {
		out[key] = value
	}

	return out
}

// HasAdmin reports whether the admin key is present, whatever its value.
func (o Options) HasAdmin() bool {
	_, ok := o[AdminOption]

	return ok
}

// WithoutAdmin returns a copy of the options with the admin key removed.
func (o Options) WithoutAdmin() Options {
	out := o.Clone()
	delete(out, AdminOption)

	return out
}

// Keys returns the option keys sorted.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Query encodes the options, minus the admin key, as URL query values. Keys
// are sorted, slices become repeated keys and nil values are dropped.
func (o Options) Query() (url.Values, error) {
	values := url.Values{}

	for _, key := range o.WithoutAdmin().Keys() {
		value := o[key]
		if value == nil {
			continue
		}

		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			if _, isBytes := value.([]byte); !isBytes {
				for i := range rv.Len() {
					text, err := FormValue(rv.Index(i).Interface())
					if err != nil {
						return nil, fmt.Errorf("query parameter %q: %w", key, err)
					}

					values.Add(key, text)
				}

				continue
			}
		}

		text, err := FormValue(value)
		if err != nil {
			return nil, fmt.Errorf("query parameter %q: %w", key, err)
		}

		values.Add(key, text)
	}

	return values, nil
}

// Admin returns options that select the admin API.
func Admin() Options {
	return Options{AdminOption: true}
}

// ChangeEvent describes a successful write against the remote API.
type ChangeEvent struct {
	Endpoint   string    `json:"endpoint"`
	Action     string    `json:"action"`
	ID         string    `json:"id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
