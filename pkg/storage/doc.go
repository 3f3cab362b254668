// Package storage writes collected windows to disk.
//
// Each window N becomes weekN.json in the output directory: an
// indented JSON array of tweet texts with HTML escaping disabled, so
// non-ASCII text survives byte for byte. Files are written to a
// temporary path and renamed into place to avoid partial output.
package storage
