// Package server holds configuration for the optional observability API.
//
// The Config struct defines the HTTP port and the API key protecting the
// endpoints. The server itself is assembled in the serve command; ingestion
// runs never require it.
package server
