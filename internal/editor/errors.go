// Package editor implements the six section editors that mutate the shared
// document store and persist their sections through the gateway.
package editor

import "fmt"

// ErrMinEntries indicates a removal would drop a list section below its
// minimum entry count. The action is blocked with no state change.
type ErrMinEntries struct {
	Section string
	Min     int
}

func (e *ErrMinEntries) Error() string {
	return fmt.Sprintf("%s requires at least %d entry", e.Section, e.Min)
}

// ErrSaveInFlight indicates a save was triggered while a previous save for
// the same editor is still outstanding.
type ErrSaveInFlight struct {
	Section string
}

func (e *ErrSaveInFlight) Error() string {
	return fmt.Sprintf("a save for %s is already in progress", e.Section)
}

// ErrRequestInFlight indicates an AI drafting request was triggered while a
// previous one is still outstanding.
type ErrRequestInFlight struct{}

func (e *ErrRequestInFlight) Error() string {
	return "an AI request is already in progress"
}

// ErrMissingJobTitle indicates AI drafting was requested before a job title
// was entered in the personal details section.
type ErrMissingJobTitle struct{}

func (e *ErrMissingJobTitle) Error() string {
	return "a job title is required before generating summaries"
}

// ErrIndexOutOfRange indicates an entry position outside the current list.
type ErrIndexOutOfRange struct {
	Section string
	Index   int
	Length  int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("%s entry %d out of range (len %d)", e.Section, e.Index, e.Length)
}

// ErrUnknownField indicates a personal-details field name that does not
// exist on the document.
type ErrUnknownField struct {
	Field string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown field: %s", e.Field)
}
