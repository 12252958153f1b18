package load_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqldml"
	"github.com/syssam/sqldml/load"
)

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
entities:
  user:
    - sql: "INSERT INTO users (id) VALUES (?)"
`), 0o644))

	var mu sync.Mutex
	var applied []map[string]sqldml.Annotation
	w, err := load.Watch(path, func(ants map[string]sqldml.Annotation) {
		mu.Lock()
		defer mu.Unlock()
		applied = append(applied, ants)
	}, load.WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	// The initial parse is applied synchronously.
	mu.Lock()
	require.Len(t, applied, 1)
	mu.Unlock()

	require.NoError(t, os.WriteFile(path, []byte(`
entities:
  user:
    - sql: "INSERT INTO users (name, id) VALUES (?, ?)"
`), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(applied) >= 2
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	o, ok := applied[len(applied)-1]["user"].Override(sqldml.OpInsert, "")
	mu.Unlock()
	require.True(t, ok)
	assert.Equal(t, "INSERT INTO users (name, id) VALUES (?, ?)", o.SQL)
}

func TestWatch_KeepsLastGoodOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
entities:
  user:
    - sql: "INSERT INTO users (id) VALUES (?)"
`), 0o644))

	var mu sync.Mutex
	applies := 0
	w, err := load.Watch(path, func(map[string]sqldml.Annotation) {
		mu.Lock()
		defer mu.Unlock()
		applies++
	}, load.WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("entities: ["), 0o644))

	// Give the watcher time to pick up the broken revision; the apply
	// callback must not run again.
	time.Sleep(300 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, 1, applies)
	mu.Unlock()
}

func TestWatch_MissingFile(t *testing.T) {
	_, err := load.Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(map[string]sqldml.Annotation) {})
	require.Error(t, err)
}
