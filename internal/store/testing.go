package store

import (
	"testing"

	"github.com/agentstation/cardmap/pkg/constants"
	"github.com/agentstation/cardmap/pkg/logging"
)

// OpenMemory opens an in-memory store that is closed when the test ends.
func OpenMemory(t testing.TB) *Store {
	t.Helper()

	s, err := Open(constants.MemoryDatabase, WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("store: open memory: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
