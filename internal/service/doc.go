// Package service provides application-level services for card generation,
// guessing, profiles, and subscription checkout. Services orchestrate the
// store layer and external provider clients; handlers call services and map
// their errors to HTTP statuses.
package service
