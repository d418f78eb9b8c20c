package inmemorystore

import (
	"context"
	"errors"
	"sync"

	"github.com/specialistvlad/bridgego/internal/session"
)

// Store is an in-memory implementation of session.ResultStore.
type Store struct {
	results sync.Map // Key: call ID string, Value: *session.Result
}

// New creates a new, empty in-memory result store.
func New() session.ResultStore {
	return &Store{}
}

// SetResult records the outcome of a call, replacing any earlier one.
func (s *Store) SetResult(ctx context.Context, res *session.Result) error {
	if res == nil || res.Call == nil {
		return errors.New("inmemorystore: result has no call")
	}
	s.results.Store(res.Call.ID(), res)
	return nil
}

// GetResult retrieves the recorded outcome of a call. The boolean is false
// if the call has no result yet.
func (s *Store) GetResult(ctx context.Context, callID string) (*session.Result, bool, error) {
	res, ok := s.results.Load(callID)
	if !ok {
		return nil, false, nil
	}
	return res.(*session.Result), true, nil
}

// Len returns the number of recorded results.
func (s *Store) Len() int {
	n := 0
	s.results.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
