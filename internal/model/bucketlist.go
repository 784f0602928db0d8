package model

import (
	"fmt"
	"strings"
)

// A Bucketlist represents a database record.
type Bucketlist struct {
	Base `msgpack:",inline" storm:"inline"`

	OwnerID     int    `msgpack:"owner_id"    storm:"index"`
	Name        string `msgpack:"name"`
	Description string `msgpack:"description"`
	Completed   bool   `msgpack:"completed"`
	// NameKey enforces the per-owner name uniqueness at the storage level.
	NameKey string `msgpack:"name_key" storm:"unique"`
}

// NewBucketlist returns a new open bucketlist owned by the given user.
func NewBucketlist(ownerID int, name, description string) *Bucketlist {
	l := &Bucketlist{
		OwnerID:     ownerID,
		Description: description,
	}
	l.Rename(name)
	return l
}

// Rename sets the name and its uniqueness key.
func (l *Bucketlist) Rename(name string) {
	l.Name = name
	l.NameKey = ScopedNameKey(l.OwnerID, name)
}

// ScopedNameKey returns the case-insensitive key of a name inside its scope (owner or list).
func ScopedNameKey(scope int, name string) string {
	return fmt.Sprintf("%d:%s", scope, strings.ToLower(name))
}
