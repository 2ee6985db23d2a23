// Package s3store persists generated images to Amazon S3 so cards keep
// working after the provider's short-lived URLs expire.
package s3store
