// Package imagegen provides interfaces and implementations for interacting
// with external image-generation services. It abstracts the details of the
// image API integration, allowing the application to turn prompts into
// images without coupling to a specific provider.
package imagegen
