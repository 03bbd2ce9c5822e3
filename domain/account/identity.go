// Package account describes who is signed in.
package account

import "time"

const ProviderAnonymous = "anonymous"

// Identity is the resolved identity of the signed-in user.
// Chat operations only ever consume its ID.
type Identity struct {
	ID          string
	IsAnonymous bool
	Provider    string
	Token       string
	CreatedAt   time.Time
}
