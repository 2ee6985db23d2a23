// Package domain contains the core entities of the prompt-guessing game:
// flashcards, guesses, per-user card references, subscriptions, and the
// identity shape delivered by the external identity provider. Entities are
// constructed through New* functions that validate invariants up front;
// stores and services never mutate them into invalid states.
package domain
