package client

import (
	"github.com/fivetwenty-io/baser-client/pkg/baser"
)

// Envelope keys and fixed options of the bc-custom-content resources.
var (
	customTablesCodec = EntityCodec[baser.CustomTable]{
		Singular: "customTable",
		Plural:   "customTables",
		Fixed:    baser.Admin(),
	}
	customFieldsCodec = EntityCodec[baser.CustomField]{
		Singular: "customField",
		Plural:   "customFields",
		Fixed:    baser.Admin(),
	}
	customLinksCodec = EntityCodec[baser.CustomLink]{
		Singular: "customLink",
		Plural:   "customLinks",
		Fixed:    baser.Admin(),
	}
	customContentsCodec = EntityCodec[baser.CustomContent]{
		Singular: "customContent",
		Plural:   "customContents",
		Fixed:    baser.Admin(),
	}
)

// CustomEntriesCodec returns the codec for the entries of one custom table.
// Columns defined by the table's custom links are kept in CustomEntry.Fields.
func CustomEntriesCodec(tableID int) EntityCodec[baser.CustomEntry] {
	return EntityCodec[baser.CustomEntry]{
		Singular: "entry",
		Plural:   "entries",
		Fixed:    baser.Options{"custom_table_id": tableID},
		Decode:   decodeCustomEntry,
		Encode:   encodeCustomEntry,
	}
}

var customEntryColumns = map[string]bool{
	"id": true, "custom_table_id": true, "name": true, "title": true,
	"parent_id": true, "lft": true, "rght": true, "level": true, "status": true,
	"publish_begin": true, "publish_end": true, "published": true,
	"creator_id": true, "created": true, "modified": true,
}

func decodeCustomEntry(record baser.Record) (*baser.CustomEntry, error) {
	entry, err := DecodeEntity[baser.CustomEntry](record)
	if err != nil {
		return nil, err
	}

	for key, value := range record {
		if customEntryColumns[key] {
			continue
		}

		if entry.Fields == nil {
			entry.Fields = baser.Record{}
		}

		entry.Fields[key] = value
	}

	return entry, nil
}

func encodeCustomEntry(entry *baser.CustomEntry) (baser.Record, error) {
	record, err := EncodeEntity(entry)
	if err != nil {
		return nil, err
	}

	if entry == nil {
		return record, nil
	}

	for key, value := range entry.Fields {
		if _, exists := record[key]; !exists {
			record[key] = value
		}
	}

	return record, nil
}
