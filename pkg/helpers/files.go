package helpers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Read returns the content of a file resolved against the base directory of ctx.
// Any failure, including a missing file, yields "".
func Read(path string, ctx *RenderContext) string {
	content, err := readFile(path, ctx)
	if err != nil {
		return ""
	}
	return content
}

// Read is the logging variant of Read: failures other than a missing file are logged
func (l *Library) Read(path string, ctx *RenderContext) string {
	content, err := readFile(path, ctx)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("failed to read file",
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return ""
	}
	return content
}

// Render reads a file, compiles it and renders it against the data root.
// Compile and render failures are not recovered here: the helper panics with the
// error so it surfaces from the enclosing template execution. So does a render
// nested deeper than MaxRenderDepth, which stops files that include each other.
func (l *Library) Render(path string, ctx *RenderContext) string {
	depth := ctx.Depth() + 1
	if depth > MaxRenderDepth {
		panic(fmt.Errorf("%w: %s: max render depth of %d exceeded", ErrRender, path, MaxRenderDepth))
	}

	source := l.Read(path, ctx)
	if source == "" {
		return ""
	}

	if l.compile == nil {
		panic(fmt.Errorf("%w: no compiler configured", ErrRender))
	}

	render, err := l.compile(source)
	if err != nil {
		panic(fmt.Errorf("%w: %s: %w", ErrRender, path, err))
	}

	result, err := render(ctx.Root(), depth)
	if err != nil {
		panic(fmt.Errorf("%w: %s: %w", ErrRender, path, err))
	}

	return result
}

// readFile resolves path and reads it
func readFile(path string, ctx *RenderContext) (string, error) {
	filename := path
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(BaseDir(ctx), filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
