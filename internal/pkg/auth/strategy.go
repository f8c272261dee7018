package auth

import "time"

// Strategy verifies bearer tokens and extracts the customer identifier.
// Tokens are issued by the delivery backend; this service only validates them
// against the shared secret. IssueToken exists for tests and service tooling.
type Strategy interface {
	IssueToken(userID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
