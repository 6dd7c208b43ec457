package helpers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func budContext(dir string, extra map[string]interface{}) *RenderContext {
	root := map[string]interface{}{
		BudKey: map[string]interface{}{"cwd": dir},
	}
	for k, v := range extra {
		root[k] = v
	}
	return NewRenderContext(root)
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello\nworld\n"), 0o600))

	t.Run("missing file", func(t *testing.T) {
		assert.Equal(t, "", Read("_not_existing_filename", nil))
	})

	t.Run("relative to bud cwd", func(t *testing.T) {
		assert.Equal(t, "hello\nworld\n", Read("hello.txt", budContext(dir, nil)))
	})

	t.Run("absolute path ignores base dir", func(t *testing.T) {
		abs := filepath.Join(dir, "hello.txt")
		assert.Equal(t, "hello\nworld\n", Read(abs, budContext("/nonexistent", nil)))
	})

	t.Run("directory reads as empty", func(t *testing.T) {
		lib := New(nil)
		assert.Equal(t, "", lib.Read(".", budContext(dir, nil)))
	})
}

func TestLibrary_Render(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partial.hbs"), []byte("Hello {{name}}"), 0o600))

	t.Run("renders with the injected compiler and the data root", func(t *testing.T) {
		var gotSource string
		var gotData interface{}
		var gotDepth int
		lib := New(func(source string) (RenderFunc, error) {
			gotSource = source
			return func(data interface{}, depth int) (string, error) {
				gotData = data
				gotDepth = depth
				return strings.ToUpper(source), nil
			}, nil
		})

		ctx := budContext(dir, map[string]interface{}{"name": "World"})
		assert.Equal(t, "HELLO {{NAME}}", lib.Render("partial.hbs", ctx))
		assert.Equal(t, "Hello {{name}}", gotSource)
		assert.Equal(t, ctx.Root(), gotData)
		assert.Equal(t, 1, gotDepth)
	})

	t.Run("missing file renders empty without compiling", func(t *testing.T) {
		lib := New(func(source string) (RenderFunc, error) {
			t.Fatal("compiler must not be called")
			return nil, nil
		})
		assert.Equal(t, "", lib.Render("missing.hbs", budContext(dir, nil)))
	})

	t.Run("compile failure propagates", func(t *testing.T) {
		compileErr := errors.New("bad syntax")
		lib := New(func(source string) (RenderFunc, error) {
			return nil, compileErr
		})

		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.ErrorIs(t, err, ErrRender)
			assert.ErrorIs(t, err, compileErr)
		}()
		lib.Render("partial.hbs", budContext(dir, nil))
	})

	t.Run("nesting past the max depth fails without compiling", func(t *testing.T) {
		lib := New(func(source string) (RenderFunc, error) {
			t.Fatal("compiler must not be called")
			return nil, nil
		})
		ctx := budContext(dir, nil)
		ctx.depth = MaxRenderDepth

		assert.PanicsWithError(t,
			fmt.Sprintf("%s: partial.hbs: max render depth of %d exceeded", ErrRender.Error(), MaxRenderDepth),
			func() { lib.Render("partial.hbs", ctx) },
		)
	})

	t.Run("render failure propagates", func(t *testing.T) {
		execErr := errors.New("exec failed")
		lib := New(func(source string) (RenderFunc, error) {
			return func(interface{}, int) (string, error) { return "", execErr }, nil
		})

		assert.PanicsWithError(t, ErrRender.Error()+": partial.hbs: exec failed", func() {
			lib.Render("partial.hbs", budContext(dir, nil))
		})
	})
}
