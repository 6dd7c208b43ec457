package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aescanero/dago-template-engine/pkg/engine"
	"github.com/aescanero/dago-template-engine/pkg/handlebars"
)

// testStore runs the behavior shared by every Store implementation
func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := s.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, s.SetTTL(ctx, "missing", time.Minute), ErrNotFound)

	require.NoError(t, s.Save(ctx, "b", "two"))
	require.NoError(t, s.Save(ctx, "a", "one"))
	require.NoError(t, s.Save(ctx, "a", "uno"))

	got, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "uno", got)

	exists, err = s.Exists(ctx, "b")
	require.NoError(t, err)
	assert.True(t, exists)

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, s.SetTTL(ctx, "b", time.Hour))

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing template is not an error
	assert.NoError(t, s.Delete(ctx, "a"))
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Save(ctx, "short", "x"))
	require.NoError(t, m.Save(ctx, "long", "y"))
	require.NoError(t, m.SetTTL(ctx, "short", time.Minute))
	require.NoError(t, m.SetTTL(ctx, "long", time.Hour))

	now = now.Add(2 * time.Minute)

	_, err := m.Load(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := m.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, exists)

	names, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"long"}, names)

	// Saving again clears the expiry
	require.NoError(t, m.Save(ctx, "short", "z"))
	got, err := m.Load(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, "z", got)
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "templates.db"))
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestSQLite_Persistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "templates.db")

	first, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "greeting", "persistent"))
	require.NoError(t, first.Close())

	second, err := NewSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Load(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "persistent", got)
}

func TestSQLite_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "short", "x"))
	require.NoError(t, s.SetTTL(ctx, "short", time.Minute))

	now = now.Add(2 * time.Minute)

	_, err = s.Load(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.SetTTL(ctx, "short", time.Minute), ErrNotFound)

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSQLite_Closed(t *testing.T) {
	ctx := context.Background()

	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())

	assert.ErrorIs(t, s.Save(ctx, "a", "b"), ErrStoreClosed)
	_, err = s.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestSQLite_InvalidPath(t *testing.T) {
	_, err := NewSQLite("/nonexistent/path/templates.db")
	assert.Error(t, err)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("TEMPLATE_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}

	prefix := fmt.Sprintf("test:%s:%d:", t.Name(), time.Now().UnixNano())
	s := NewRedis(client, prefix, zaptest.NewLogger(t))
	t.Cleanup(func() {
		for _, name := range []string{"a", "b"} {
			_ = s.Delete(context.Background(), name)
		}
	})

	testStore(t, s)
}

func TestNewRedis_DefaultPrefix(t *testing.T) {
	s := NewRedis(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "", nil)
	assert.Equal(t, DefaultPrefix+"greeting", s.key("greeting"))
	assert.NotNil(t, s.logger)
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()

	compilers := map[string]Compiler{
		"engine": engine.New(engine.WithHelpers(map[string]interface{}{
			"shout": func(s string) string { return s + "!" },
		})),
		"handlebars": handlebars.Create().RegisterHelper("shout", func(s string) string { return s + "!" }),
	}

	for name, compiler := range compilers {
		t.Run(name, func(t *testing.T) {
			catalog := NewCatalog(NewMemory(), compiler)

			require.NoError(t, catalog.Put(ctx, "greeting", "Hello {{shout (titlecase name)}}"))

			tmpl, err := catalog.Get(ctx, "greeting")
			require.NoError(t, err)
			assert.Equal(t, "Hello {{shout (titlecase name)}}", tmpl.Source())

			out, err := catalog.Render(ctx, "greeting", map[string]interface{}{"name": "ada lovelace"})
			require.NoError(t, err)
			assert.Equal(t, "Hello Ada Lovelace!", out)
		})
	}
}

func TestCatalog_Errors(t *testing.T) {
	ctx := context.Background()
	memory := NewMemory()
	catalog := NewCatalog(memory, engine.New())

	assert.ErrorIs(t, catalog.Put(ctx, "empty", ""), ErrEmptySource)
	assert.ErrorIs(t, catalog.Put(ctx, "broken", "{{#if}}"), handlebars.ErrParse)

	_, err := catalog.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, memory.Save(ctx, "corrupt", "not precompiled"))
	_, err = catalog.Get(ctx, "corrupt")
	assert.ErrorIs(t, err, handlebars.ErrPrecompiled)
}
