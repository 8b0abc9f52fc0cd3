package model

import "github.com/google/uuid"

// generateUUID creates a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// EnsureIDs gives every item without an id a generated one so rows keep a
// stable key. Items are modified in place and the slice is returned.
func EnsureIDs(items []Item) []Item {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = ItemID(generateUUID())
		}
	}
	return items
}
