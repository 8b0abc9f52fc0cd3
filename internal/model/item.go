package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Item represents a single gallery entry as served by a category source.
type Item struct {
	ID          ItemID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"` // empty when the source omits it
	ImageURL    string `json:"imageUrl"`
}

// ItemID is an opaque item identifier. Sources use both JSON strings and
// numbers for ids, so both decode into the same string form.
type ItemID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ItemID(n.String())
	return nil
}

// String returns the id as a plain string.
func (id ItemID) String() string {
	return string(id)
}

// SearchText returns the lowercased title and description used for filtering.
func (i Item) SearchText() (title, description string) {
	return strings.ToLower(i.Title), strings.ToLower(i.Description)
}
