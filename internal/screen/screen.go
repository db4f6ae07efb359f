// Package screen holds one controller per page of the client. Controllers
// keep transient list and selection state, validate input before any
// network call, and reload the affected list from the server after every
// mutation instead of patching local state optimistically.
//
// Controllers are shared across request goroutines by the web UI, so each
// guards its state with a mutex. The lock is never held across a network
// call; when concurrent refreshes race, the last response to land wins.
package screen

import "errors"

// ErrBusy means the same action is already in flight. Busy flags guard
// re-entrant submission of a single action only; there is no cross-action
// mutual exclusion.
var ErrBusy = errors.New("action already in progress")

// ErrAlreadyProcessing refuses a process request for a document the server
// is already processing; re-processing has no defined semantics.
var ErrAlreadyProcessing = errors.New("document is already being processed")

// ErrUnknownDocument means the id is not in the current document list.
var ErrUnknownDocument = errors.New("unknown document")
