// Package api holds the request and response messages of the dentaldesk.v1 services.
//
// Messages travel as JSON (see apiconnect). Money is sent twice: as integer cents for
// arithmetic and as a formatted string for display.
package api
