package errors

import "errors"

var (
	// ErrNoIdentity indicates that the request carries no resolvable user session
	ErrNoIdentity = errors.New("no authenticated user")

	// ErrNoCustomerMapping indicates that the user has no associated Stripe customer
	ErrNoCustomerMapping = errors.New("no customer mapping found for user")

	// ErrNoActiveSubscription indicates that the user has no active or trialing subscription
	ErrNoActiveSubscription = errors.New("no active subscription found")

	// ErrAlreadySubscribed indicates that the user already holds an active or trialing subscription
	ErrAlreadySubscribed = errors.New("user already has an active subscription")

	// ErrSongNotFound indicates that the requested song does not exist
	ErrSongNotFound = errors.New("song not found")
)
