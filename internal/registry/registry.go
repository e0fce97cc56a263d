package registry

import (
	"context"
	"errors"
)

// Registry resolves the public feed identifier of a canteen (the path
// segment in /feed/v2/{identifier}/...) to the backend's canteen ID. One
// canteen may be registered under several identifiers.
type Registry interface {
	Resolve(ctx context.Context, identifier string) (string, error)
}

// ErrUnknownIdentifier is returned for identifiers with no registration.
var ErrUnknownIdentifier = errors.New("registry: unknown canteen identifier")
