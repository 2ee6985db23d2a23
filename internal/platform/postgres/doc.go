// Package postgres implements the store interfaces using a PostgreSQL
// database accessed through database/sql with the pgx driver. Backend
// error codes are translated to the store package's sentinel errors so
// callers never depend on driver details.
package postgres
