// Package progress persists which date windows have been fully
// collected, so an interrupted run can be restarted without redoing
// finished work.
//
// State lives in a single JSON file mapping window keys to booleans:
//
//	{"2024-08-09_to_2024-08-15": true}
//
// A window is only marked done after its output file has been written,
// and each mark is persisted immediately with an atomic write. A
// missing file means a fresh run; a file that exists but cannot be
// parsed is an error, because treating it as empty would silently
// recollect and overwrite completed windows.
package progress
