// Package store defines the persistence interfaces the services depend on,
// along with the sentinel errors implementations map their backend failures
// to. Concrete implementations live under internal/platform; services and
// handlers only ever see these interfaces, so tests can substitute fakes.
package store
