// Package todo holds the task collection and the store that persists it.
//
// The persisted form is a single JSON array stored under one key of a
// key-value backend:
//
//	[
//	  {
//	    "id": "5f0c8c2e-8f4e-4b55-9d0c-3b7f2d6f0a11",
//	    "text": "Write report",
//	    "completed": false,
//	    "createdAt": 1739971200000
//	  }
//	]
//
// The head of the array is the most recently created task. createdAt is a
// Unix timestamp in milliseconds. There is no schema version field.
//
// # Collection
//
// Collection operations never modify their receiver; each returns a new
// slice. Store wraps them, keeps the latest value and writes it back to the
// backend before returning.
//
// # Loading
//
// A missing key, a read error, malformed JSON or a value that is not an
// array yields an empty collection. Inside an array each record is checked
// against the embedded JSON Schema on its own, and records that fail are
// skipped while their siblings load. Loading never fails from the caller's
// point of view.
//
// # Text
//
//   - Leading and trailing whitespace is trimmed
//   - Empty text is rejected silently (add is a no-op, edit keeps the old text)
//   - Text is capped at MaxTextLength runes
package todo
