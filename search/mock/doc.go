// Package mock provides test double implementations of the search
// backend interfaces.
//
// The mocks allow tests to run without network access and enable
// controlled, deterministic behavior:
//
//	backend := mock.NewLinkBackend()
//	backend.LinksFunc = func(ctx context.Context, query string, max int) ([]string, error) {
//	    return []string{"https://example.com"}, nil
//	}
package mock
