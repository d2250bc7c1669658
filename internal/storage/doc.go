// Package storage provides JSON file persistence in the club-fixtures data directory.
//
// Followed clubs are kept in a single document (clubs.json) holding the list in
// insertion order. A missing file reads as an empty list. The same directory
// holds the sealed calendar token and, by default, the published .ics file.
// The default storage location is ~/.local/share/club-fixtures/.
package storage
