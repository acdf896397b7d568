package llm

import "context"

// Checked wraps a provider with a one-time availability probe. The
// probe runs at construction; if the backend was unreachable then,
// every subsequent call short-circuits to ErrUnavailable without a
// network attempt.
type Checked struct {
	provider  Provider
	available bool
}

// NewChecked probes the provider once and returns the wrapped result
func NewChecked(ctx context.Context, provider Provider) *Checked {
	return &Checked{
		provider:  provider,
		available: provider.IsAvailable(ctx),
	}
}

// NewCheckedUnavailable returns a wrapper for a provider that could
// not even be constructed (e.g. missing credentials)
func NewCheckedUnavailable(name string) *Checked {
	return &Checked{
		provider:  unavailableProvider{name: name},
		available: false,
	}
}

// Name returns the underlying provider name
func (c *Checked) Name() string {
	return c.provider.Name()
}

// Available reports the result of the construction-time probe
func (c *Checked) Available() bool {
	return c.available
}

// ExtractJSON delegates to the provider, or fails fast with
// ErrUnavailable
func (c *Checked) ExtractJSON(ctx context.Context, req ExtractRequest) ([]byte, error) {
	if !c.available {
		return nil, ErrUnavailable
	}
	return c.provider.ExtractJSON(ctx, req)
}

// IsAvailable returns the cached probe result; no re-probing
func (c *Checked) IsAvailable(_ context.Context) bool {
	return c.available
}

// unavailableProvider stands in for a backend whose construction
// failed
type unavailableProvider struct {
	name string
}

func (u unavailableProvider) Name() string { return u.name }

func (u unavailableProvider) ExtractJSON(_ context.Context, _ ExtractRequest) ([]byte, error) {
	return nil, ErrUnavailable
}

func (u unavailableProvider) IsAvailable(_ context.Context) bool { return false }
