// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios: a missing record can
// be rendered as an in-context notice while a duplicate key becomes a
// field-level message on the originating form.
package repository

import (
	"errors"
	"strings"
)

// ErrClassificationNotFound is returned when a classification id does not
// resolve to a row.
var ErrClassificationNotFound = errors.New("classification not found")

// ErrClassificationExists is returned when a classification name collides
// with the unique index on classification_name.
var ErrClassificationExists = errors.New("classification name already exists")

// ErrVehicleNotFound is returned when an inventory id does not resolve to a
// row, including delete attempts against an id that was already removed.
var ErrVehicleNotFound = errors.New("vehicle not found")

// ErrEmailExists is returned when a registration collides with the unique
// index on account_email.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether a MySQL error is a duplicate key violation
// (error 1062). The driver does not expose a typed error for this, so the
// check matches the error number in the message.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
