// Package calendar publishes fixtures as calendar events.
//
// Publish applies one policy to any EventStore: an event titled
// "<home> - <away>" that already exists within a day of the kickoff is updated
// when its start moved, left alone otherwise, and created when absent.
// Stores exist for an RFC 5545 file on disk, Google Calendar and a dry run
// that only prints. Google access goes through Authorizer, which either
// returns an authorized HTTP client or the consent URL the user must visit.
package calendar
