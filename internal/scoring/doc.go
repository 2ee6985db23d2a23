// Package scoring provides interfaces and implementations for interacting
// with external AI/LLM services for guess grading. It abstracts the details
// of LLM API integration (Gemini), allowing the application to grade how
// close a guess comes to a flashcard's original prompt without coupling to
// specific external services.
package scoring
