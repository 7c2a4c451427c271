package uid

import "github.com/google/uuid"

// New generates a new unique identifier. Used for user ids, item grant
// ids and request ids.
func New() string {
	return uuid.New().String()
}
