// Package config defines the application's configuration structure and
// loading logic. Configuration is grouped by concern (server, database,
// external providers) and validated at startup so that a misconfigured
// deployment fails fast instead of failing on the first request.
package config
