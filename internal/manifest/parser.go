package manifest

import (
	_ "embed"
	"fmt"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed runtime.yaml
var runtimeYAML []byte

var (
	loadOnce sync.Once
	loaded   *Runtime
	loadErr  error
)

// Load returns the embedded runtime manifest, validated and parsed once.
func Load() (*Runtime, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(runtimeYAML)
	})
	return loaded, loadErr
}

// Parse validates data against the manifest schema and decodes it.
func Parse(data []byte) (*Runtime, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Issues: result.Issues}
	}

	var r Runtime
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing runtime manifest: %w", err)
	}
	return &r, nil
}

// InvalidError reports a manifest that fails schema validation.
type InvalidError struct {
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	if len(e.Issues) == 0 {
		return "runtime manifest is invalid"
	}
	first := e.Issues[0]
	if first.Path != "" {
		return fmt.Sprintf("runtime manifest is invalid: %s: %s (%d issue(s))", first.Path, first.Message, len(e.Issues))
	}
	return fmt.Sprintf("runtime manifest is invalid: %s (%d issue(s))", first.Message, len(e.Issues))
}
