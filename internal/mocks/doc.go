// Package mocks provides hand-written mock implementations of the store and
// auth interfaces for tests.
//
// Each mock exposes optional function fields (for example GetByIDFn). When a
// field is nil the mock falls back to a small in-memory implementation, so
// most tests only override the behaviour they care about:
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id string) (*domain.User, error) {
//	    return nil, errors.New("boom")
//	}
package mocks
