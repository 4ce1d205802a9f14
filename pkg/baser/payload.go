package baser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// File is a binary field value sent as a multipart file part.
type File struct {
	// Name is the file name reported to the server.
	Name string
	// ContentType defaults to application/octet-stream.
	ContentType string
	Reader      io.Reader
}

// NewFile wraps data as a File.
func NewFile(name string, data []byte) *File {
	return &File{Name: name, Reader: bytes.NewReader(data)}
}

// Payload is an encoded request body. It is either a JSONPayload or a
// MultipartPayload.
type Payload interface {
	// ContentType is the value of the Content-Type header.
	ContentType() string
	// Encode returns the request body.
	Encode() ([]byte, error)
	// Fields returns the unencoded record.
	Fields() Record

	payload()
}

// NewPayload selects the encoding for fields. A single binary value makes the
// whole record multipart. Binary values nested in maps or slices are not
// supported and fail at Encode.
func NewPayload(fields Record) Payload {
	for _, value := range fields {
		if IsBinary(value) {
			return &MultipartPayload{record: fields}
		}
	}

	return &JSONPayload{record: fields}
}

// IsBinary reports whether value is sent as one or more file parts.
func IsBinary(value interface{}) bool {
	switch value.(type) {
	case *File, File, []*File, []File, []byte, io.Reader:
		return true
	default:
		return false
	}
}

// containsBinary reports whether value is binary or holds a binary value at
// any depth.
func containsBinary(value interface{}) bool {
	if IsBinary(value) {
		return true
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if containsBinary(iter.Value().Interface()) {
				return true
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			if containsBinary(rv.Index(i).Interface()) {
				return true
			}
		}
	case reflect.Ptr:
		if !rv.IsNil() {
			return containsBinary(rv.Elem().Interface())
		}
	}

	return false
}

// JSONPayload encodes a record as a single JSON document.
type JSONPayload struct {
	record Record
}

// ContentType implements Payload.
func (p *JSONPayload) ContentType() string { return "application/json" }

// Fields implements Payload.
func (p *JSONPayload) Fields() Record { return p.record }

// Encode implements Payload. A nil record encodes as an empty object.
func (p *JSONPayload) Encode() ([]byte, error) {
	record := p.record
	if record == nil {
		record = Record{}
	}

	for _, key := range sortedFieldKeys(record) {
		if containsBinary(record[key]) {
			return nil, fmt.Errorf("field %q: %w: nested binary value", key, ErrUnsupportedFieldValue)
		}
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	return data, nil
}

func (p *JSONPayload) payload() {}

// MultipartPayload encodes a record as multipart/form-data.
type MultipartPayload struct {
	record   Record
	boundary string
}

// Fields implements Payload.
func (p *MultipartPayload) Fields() Record { return p.record }

// ContentType implements Payload. It is only valid after Encode.
func (p *MultipartPayload) ContentType() string {
	return "multipart/form-data; boundary=" + p.boundary
}

// Encode implements Payload. Readers are consumed, so a payload is encoded
// once.
func (p *MultipartPayload) Encode() ([]byte, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, key := range sortedFieldKeys(p.record) {
		value := p.record[key]

		if IsBinary(value) {
			err := writeFileParts(writer, key, value)
			if err != nil {
				return nil, err
			}

			continue
		}

		text, err := FormValue(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}

		err = writer.WriteField(key, text)
		if err != nil {
			return nil, fmt.Errorf("failed to write field %q: %w", key, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	p.boundary = writer.Boundary()

	return buf.Bytes(), nil
}

func (p *MultipartPayload) payload() {}

// writeFileParts writes one part per file of a file slice, all under key.
func writeFileParts(writer *multipart.Writer, key string, value interface{}) error {
	switch files := value.(type) {
	case []*File:
		for _, file := range files {
			err := writeFilePart(writer, key, file)
			if err != nil {
				return err
			}
		}

		return nil
	case []File:
		for i := range files {
			err := writeFilePart(writer, key, &files[i])
			if err != nil {
				return err
			}
		}

		return nil
	default:
		return writeFilePart(writer, key, value)
	}
}

func writeFilePart(writer *multipart.Writer, key string, value interface{}) error {
	file := asFile(key, value)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(key), escapeQuotes(file.Name)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create file part %q: %w", key, err)
	}

	if file.Reader == nil {
		return nil
	}

	_, err = io.Copy(part, file.Reader)
	if err != nil {
		return fmt.Errorf("failed to write file part %q: %w", key, err)
	}

	return nil
}

func asFile(key string, value interface{}) *File {
	switch v := value.(type) {
	case *File:
		if v == nil {
			return &File{Name: key}
		}

		file := *v
		if file.Name == "" {
			file.Name = key
		}

		return &file
	case File:
		return asFile(key, &v)
	case []byte:
		return &File{Name: key, Reader: bytes.NewReader(v)}
	case io.Reader:
		return &File{Name: key, Reader: v}
	default:
		return &File{Name: key}
	}
}

func sortedFieldKeys(record Record) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// FormValue stringifies a non-binary value for a multipart field or a query
// parameter. Maps and slices are sent as JSON.
func FormValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case json.Number:
		return v.String(), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "", nil
		}

		return FormValue(rv.Elem().Interface())
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if containsBinary(value) {
			return "", fmt.Errorf("%w: nested binary value", ErrUnsupportedFieldValue)
		}

		data, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrUnsupportedFieldValue, err)
		}

		return string(data), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.String:
		return rv.String(), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedFieldValue, value)
	}
}
