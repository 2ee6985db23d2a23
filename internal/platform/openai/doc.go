// Package openai implements the imagegen.Generator interface against the
// OpenAI images API. Provider failures are translated into the imagegen
// package's error taxonomy.
package openai
