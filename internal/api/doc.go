// Package api provides HTTP handlers for the card wall, generation,
// guessing, profile, and checkout endpoints.
package api
