// Package club defines the clubs a user follows and the registry rules for them.
//
// A club is identified by its name or, when set, its source URL. Adding a club
// that matches an existing entry by either key leaves the registry unchanged;
// Refresh is the explicit way to update the stored URL, league and logo.
package club
