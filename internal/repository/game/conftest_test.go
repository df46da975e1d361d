package game

import (
	"context"
	"strings"
)

// fakeStore is an in-memory hash store for repository tests.
type fakeStore struct {
	hashes map[string]map[string]string

	hsetErr error
	scanErr error
	getErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{hashes: make(map[string]map[string]string)}
}

func (s *fakeStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if s.hsetErr != nil {
		return s.hsetErr
	}
	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string]string)
		s.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (s *fakeStore) HDel(_ context.Context, key string, fields ...string) error {
	h, ok := s.hashes[key]
	if !ok {
		return nil
	}
	for _, f := range fields {
		delete(h, f)
	}
	return nil
}

func (s *fakeStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = s.hashes[k]
	}
	return out, nil
}

func (s *fakeStore) Del(_ context.Context, key string) error {
	delete(s.hashes, key)
	return nil
}

func (s *fakeStore) Scan(_ context.Context, pattern string) ([]string, error) {
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range s.hashes {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
