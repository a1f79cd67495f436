// Package filesync copies a single file into place only when the destination
// is missing or its modification time differs from the source by at least
// Tolerance. Destinations whose parent directory does not exist are skipped
// silently so callers can sync over optional output trees.
package filesync
