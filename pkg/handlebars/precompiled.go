package handlebars

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	precompiledPrefix = "Handlebars.template("
	precompiledSuffix = ")"

	// PrecompiledVersion is the envelope format written by Precompile
	PrecompiledVersion = 1
)

// envelope is the msgpack payload of a precompiled template
type envelope struct {
	Version  int    `msgpack:"v"`
	Source   string `msgpack:"src"`
	Checksum uint64 `msgpack:"sum"`
}

// encodePrecompiled wraps source as Handlebars.template("<base64 msgpack>")
func encodePrecompiled(source string) (string, error) {
	payload, err := msgpack.Marshal(&envelope{
		Version:  PrecompiledVersion,
		Source:   source,
		Checksum: xxhash.Sum64String(source),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode precompiled template: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(payload)
	return precompiledPrefix + strconv.Quote(encoded) + precompiledSuffix, nil
}

// decodePrecompiled extracts and verifies the source of a precompiled template
func decodePrecompiled(precompiled string) (string, error) {
	expr := strings.TrimSpace(precompiled)
	if !strings.HasPrefix(expr, precompiledPrefix) || !strings.HasSuffix(expr, precompiledSuffix) {
		return "", fmt.Errorf("%w: not a template expression", ErrPrecompiled)
	}
	quoted := expr[len(precompiledPrefix) : len(expr)-len(precompiledSuffix)]

	encoded, err := strconv.Unquote(quoted)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPrecompiled, err)
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPrecompiled, err)
	}

	var env envelope
	if err := msgpack.Unmarshal(payload, &env); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPrecompiled, err)
	}

	if env.Version != PrecompiledVersion {
		return "", fmt.Errorf("%w: unsupported version %d", ErrPrecompiled, env.Version)
	}

	if xxhash.Sum64String(env.Source) != env.Checksum {
		return "", fmt.Errorf("%w: checksum mismatch", ErrPrecompiled)
	}

	return env.Source, nil
}
