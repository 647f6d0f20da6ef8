package util

import "github.com/google/uuid"

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// PrefixedID returns "<prefix>-<uuid>", the external id format of job board entities.
func PrefixedID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
