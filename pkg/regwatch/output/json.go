// Package output serializes purchase records to JSON.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/diff"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
)

// ErrSerialization indicates that records could not be encoded or decoded.
var ErrSerialization = errors.New("serialization error")

// ToJSON converts a value to JSON. HTML characters are left unescaped so
// registry text round-trips byte for byte.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// RecordsToJSON converts records to a JSON array. A nil slice encodes as [].
func RecordsToJSON(records []models.Purchase, pretty bool) ([]byte, error) {
	if records == nil {
		records = []models.Purchase{}
	}
	return ToJSON(records, pretty)
}

// ChangesetToJSON encodes the records of a changeset as the delivery payload.
func ChangesetToJSON(cs diff.Changeset, pretty bool) ([]byte, error) {
	return RecordsToJSON(cs.Records, pretty)
}

// FromJSON decodes a JSON array of records. Unknown fields are ignored.
func FromJSON(data []byte) ([]models.Purchase, error) {
	var records []models.Purchase
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return records, nil
}
