package provider

import (
	"context"
	"fmt"

	"github.com/vietdv277/sm2env/pkg/types"
)

// FetchErrorKind classifies why a secret fetch failed
type FetchErrorKind string

const (
	ErrNotFound     FetchErrorKind = "not_found"
	ErrAccessDenied FetchErrorKind = "access_denied"
	ErrNetwork      FetchErrorKind = "network"
	ErrOther        FetchErrorKind = "other"
)

// FetchError wraps a failed fetch with its classified kind.
// Fetch errors are surfaced to the user as-is and never retried here;
// the SDK's own retry policy has already run by the time one is returned.
type FetchError struct {
	Kind FetchErrorKind
	Name string
	Err  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case ErrNotFound:
		return fmt.Sprintf("secret %q not found: %v", e.Name, e.Err)
	case ErrAccessDenied:
		return fmt.Sprintf("access denied for secret %q: %v", e.Name, e.Err)
	case ErrNetwork:
		return fmt.Sprintf("network error fetching secret %q: %v", e.Name, e.Err)
	default:
		return fmt.Sprintf("failed to fetch secret %q: %v", e.Name, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RawSecret is the unclassified payload of one fetched secret.
// Exactly one of Text or Binary carries the payload, selected by IsBinary.
type RawSecret struct {
	Name     string
	ARN      string
	Version  string
	Text     string
	Binary   []byte
	IsBinary bool
}

// Payload returns the raw payload bytes regardless of variant
func (r *RawSecret) Payload() []byte {
	if r.IsBinary {
		return r.Binary
	}
	return []byte(r.Text)
}

// SecretsProvider defines the interface for secret retrieval
type SecretsProvider interface {
	// Fetch returns the raw payload of a named secret
	Fetch(ctx context.Context, name string) (*RawSecret, error)

	// List returns secrets whose names contain filter, sorted by name.
	// An empty filter matches everything.
	List(ctx context.Context, filter string) ([]types.Secret, error)
}
