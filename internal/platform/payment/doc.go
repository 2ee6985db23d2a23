// Package payment wraps the Stripe checkout API. It creates subscription
// checkout sessions and verifies their payment status after the buyer
// returns from Stripe's hosted page.
package payment
