// Package postgres implements club.Store on PostgreSQL.
//
// The schema ships embedded in the binary and is applied with golang-migrate
// (see Migrator). Clubs keep insertion order through their serial id.
package postgres
