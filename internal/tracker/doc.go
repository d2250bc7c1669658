// Package tracker ties followed clubs, the fixture source and a calendar
// together. Clubs are fetched one after another; a club that fails is logged
// and reported without affecting the others.
package tracker
