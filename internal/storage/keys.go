package storage

import (
	"fmt"
	"path"
	"regexp"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// RedisSlotKey namespaces a slot inside a shared Redis database.
func RedisSlotKey(slot string) string {
	return fmt.Sprintf("reportaudit:slot:%s", slot)
}

// ObjectName returns the object-storage name that holds a slot.
func ObjectName(prefix, slot string) string {
	return path.Join(prefix, fileSafe(slot)+".json")
}

// fileSafe makes a slot name usable as a single path element.
func fileSafe(slot string) string {
	return unsafeKeyChars.ReplaceAllString(slot, "_")
}
