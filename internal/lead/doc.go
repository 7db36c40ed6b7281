// Package lead stores the prospect business captured during a session.
//
// Every field written through this package is sanitized first: surrounding
// whitespace is trimmed and the value is capped at MaxFieldLength runes.
// Writes made through Capture.Set are persisted immediately through a Persister.
package lead
