// Package storage provides the key-value backends tasks are persisted to.
//
// Every backend stores opaque string values under string keys and is used
// synchronously from a single goroutine:
//
//   - file: a JSON object on disk, guarded by an advisory lock file
//   - memory: an in-process map that is lost on exit
//   - mysql: a two-column table in a MySQL database
//
// A missing key is reported as absent rather than as an error.
package storage
