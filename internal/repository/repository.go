// Package repository provides read and write access to the pre-populated
// catalog store (systems, stations, items, station snapshots). Reference
// data is produced by a separate bulk importer; nothing here creates
// missing entities.
package repository

import "errors"

// ErrNotFound is returned when a name does not resolve against the
// catalog's reference data.
var ErrNotFound = errors.New("not found in catalog")
