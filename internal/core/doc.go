// Package core holds the employee administration logic, independent of any
// transport. The web server and the hrctl command both drive it.
//
// # Architecture
//
//   - Employee and Input: the record exchanged with the Record Store and the
//     editable form fields.
//   - Pipeline: [Apply] filters and sorts a list, [Page] slices it into pages
//     of [PageSize].
//   - State: everything one browser session knows. It only changes through
//     [Reduce], and every list, filter or sort change returns to page 1.
//   - Service: runs store calls and applies their outcome to a session's
//     state under a per-session lock.
//
// # Import and export
//
// [ParseImport] reads uploaded files line by line with a plain comma split.
// Imported rows are marked Local and never sent to the store. [WriteCSV]
// exports the whole list with standard quoting; [WritePDF] renders the page
// currently on screen.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]:
//
//   - STORE001-STORE005: Record Store errors
//   - IMP001-IMP002: import errors
//   - FILE001-FILE002: upload errors
//   - REQ001-REQ002: cancelled and timed out requests
//   - RATE001: rate limited requests
package core
