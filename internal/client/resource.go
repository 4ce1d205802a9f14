package client

import (
	"context"
	"fmt"
	"net/http"

	baserhttp "github.com/fivetwenty-io/baser-client/internal/http"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/mitchellh/mapstructure"
)

// EntityCodec describes how one resource type is wrapped in API responses
// and converted to and from records.
type EntityCodec[T any] struct {
	// Singular is the envelope key of view and write responses.
	Singular string
	// Plural is the envelope key of list responses.
	Plural string
	// Fixed options are merged under the caller's options on reads. Writes
	// send them, minus admin, as body fields under the caller's fields.
	Fixed baser.Options
	// Decode defaults to DecodeEntity.
	Decode func(baser.Record) (*T, error)
	// Encode defaults to EncodeEntity.
	Encode func(*T) (baser.Record, error)
}

// Resource implements baser.ResourceClient for one endpoint.
type Resource[T any] struct {
	endpoint   string
	dispatcher baser.Dispatcher
	codec      EntityCodec[T]
}

// NewResource creates a resource client for endpoint.
func NewResource[T any](dispatcher baser.Dispatcher, endpoint string, codec EntityCodec[T]) *Resource[T] {
	if codec.Decode == nil {
		codec.Decode = DecodeEntity[T]
	}

	if codec.Encode == nil {
		codec.Encode = EncodeEntity[T]
	}

	return &Resource[T]{
		endpoint:   endpoint,
		dispatcher: dispatcher,
		codec:      codec,
	}
}

// Endpoint returns the logical endpoint name.
func (r *Resource[T]) Endpoint() string {
	return r.endpoint
}

// List retrieves the records matching opts. A response without the list key
// yields an empty slice.
func (r *Resource[T]) List(ctx context.Context, opts baser.Options) ([]T, error) {
	record, err := r.dispatch(ctx, baser.OpList, "", nil, opts)
	if err != nil {
		return nil, err
	}

	raw, ok := record[r.codec.Plural]
	if !ok || raw == nil {
		return []T{}, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, unexpectedShape(r.codec.Plural, raw)
	}

	entities := make([]T, 0, len(items))

	for _, item := range items {
		fields, ok := item.(map[string]interface{})
		if !ok {
			return nil, unexpectedShape(r.codec.Plural, item)
		}

		entity, err := r.codec.Decode(fields)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", r.endpoint, err)
		}

		entities = append(entities, *entity)
	}

	return entities, nil
}

// Get retrieves a single record by id.
func (r *Resource[T]) Get(ctx context.Context, id string, opts baser.Options) (*T, error) {
	record, err := r.dispatch(ctx, baser.OpView, id, nil, opts)
	if err != nil {
		return nil, err
	}

	return r.entity(record, id)
}

// Add creates a record from raw fields. Binary field values are uploaded as
// multipart parts.
func (r *Resource[T]) Add(ctx context.Context, fields baser.Record, opts baser.Options) (*T, error) {
	return r.write(ctx, baser.OpAdd, "", fields, opts)
}

// Create creates a record from a typed entity.
func (r *Resource[T]) Create(ctx context.Context, entity *T, opts baser.Options) (*T, error) {
	fields, err := r.codec.Encode(entity)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", r.endpoint, err)
	}

	return r.Add(ctx, fields, opts)
}

// Edit updates the record identified by id with fields.
func (r *Resource[T]) Edit(ctx context.Context, id string, fields baser.Record, opts baser.Options) (*T, error) {
	return r.write(ctx, baser.OpEdit, id, fields, opts)
}

// Delete removes the record identified by id.
func (r *Resource[T]) Delete(ctx context.Context, id string, opts baser.Options) error {
	record, err := r.dispatch(ctx, baser.OpDelete, id, nil, opts)
	if err != nil {
		return err
	}

	return baserhttp.ValidationFromRecord(http.StatusOK, record)
}

func (r *Resource[T]) write(ctx context.Context, op baser.Operation, id string, fields baser.Record, opts baser.Options) (*T, error) {
	record, err := r.dispatch(ctx, op, id, fields, opts)
	if err != nil {
		return nil, err
	}

	err = baserhttp.ValidationFromRecord(http.StatusOK, record)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, r.endpoint, err)
	}

	return r.entity(record, id)
}

func (r *Resource[T]) dispatch(ctx context.Context, op baser.Operation, id string, fields baser.Record, opts baser.Options) (baser.Record, error) {
	if op.IsWrite() {
		fields = r.withFixedFields(fields)
	}

	record, err := r.dispatcher.Dispatch(ctx, op, &baser.CallRequest{
		Endpoint: r.endpoint,
		ID:       id,
		Payload:  fields,
		Options:  opts.Merge(r.codec.Fixed),
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // dispatcher errors already carry the operation
	}

	return record, nil
}

func (r *Resource[T]) withFixedFields(fields baser.Record) baser.Record {
	fixed := r.codec.Fixed.WithoutAdmin()
	if len(fixed) == 0 {
		return fields
	}

	out := make(baser.Record, len(fields)+len(fixed))
	for key, value := range fixed {
		out[key] = value
	}

	for key, value := range fields {
		out[key] = value
	}

	return out
}

func (r *Resource[T]) entity(record baser.Record, id string) (*T, error) {
	fields, ok := record[r.codec.Singular].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", r.endpoint, id, baser.ErrRecordNotFound)
	}

	entity, err := r.codec.Decode(fields)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", r.endpoint, err)
	}

	return entity, nil
}

func unexpectedShape(key string, value interface{}) error {
	return &baser.APIError{Message: fmt.Sprintf("unexpected %T under %q", value, key)}
}

// DecodeEntity converts a record into T using the json field tags. Numeric
// strings and 0/1 flags are accepted where T expects numbers and booleans.
func DecodeEntity[T any](record baser.Record) (*T, error) {
	var entity T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &entity,
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}

	err = decoder.Decode(map[string]interface{}(record))
	if err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}

	return &entity, nil
}

// EncodeEntity converts entity into a record keyed by the json field tags.
// Zero values tagged omitempty are left out.
func EncodeEntity[T any](entity *T) (baser.Record, error) {
	if entity == nil {
		return baser.Record{}, nil
	}

	fields := map[string]interface{}{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &fields,
	})
	if err != nil {
		return nil, fmt.Errorf("creating encoder: %w", err)
	}

	err = decoder.Decode(entity)
	if err != nil {
		return nil, fmt.Errorf("encoding entity: %w", err)
	}

	return baser.Record(fields), nil
}
