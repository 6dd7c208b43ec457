package handlebars

import (
	"fmt"

	"github.com/aymerick/raymond"

	"github.com/aescanero/dago-template-engine/pkg/helpers"
)

// Template is a compiled template
type Template struct {
	tpl    *raymond.Template
	source string
}

// Source returns the template source
func (t *Template) Source() string {
	return t.source
}

// Exec renders the template with data.
// The data is also published to helpers as the data root of the render.
func (t *Template) Exec(data interface{}) (string, error) {
	return t.ExecNested(data, 0)
}

// ExecNested is Exec for a template rendered by the render helper at the given
// nesting depth
func (t *Template) ExecNested(data interface{}, depth int) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrExecute, rerr)
			} else {
				err = fmt.Errorf("%w: %v", ErrExecute, r)
			}
		}
	}()

	frame := raymond.NewDataFrame()
	frame.Set(helpers.RootDataKey, data)
	frame.Set(helpers.DepthDataKey, depth)

	result, err = t.tpl.ExecWith(data, frame)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecute, err)
	}

	return result, nil
}

// MustExec is like Exec but panics on error
func (t *Template) MustExec(data interface{}) string {
	result, err := t.Exec(data)
	if err != nil {
		panic(err)
	}
	return result
}
