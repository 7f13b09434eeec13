package interfaces

import "context"

// Preflight checks that the page under test is served before a browser starts
type Preflight interface {
	Check(ctx context.Context, url string) error
}
