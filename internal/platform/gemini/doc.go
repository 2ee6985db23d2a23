// Package gemini implements the scoring.Scorer interface using Google's
// Gemini API. It owns prompt construction, retry behavior, and translation
// of API failures into the scoring package's error taxonomy.
package gemini
