// Package catalog loads and indexes the reference standards table: the
// mapping from water-quality parameter to acceptable range, unit, and
// severity.
//
// The catalog is built once at process startup from a JSON source and is
// immutable thereafter, so it may be shared read-only across concurrent
// evaluations without synchronization. A load failure is fatal for the
// process: no report can be built without a valid catalog, and catalog
// content is a deployment-time concern, not a transient fault.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"aquacheck/internal/types"
)

// LoadErrorType categorizes catalog load failures for diagnostics.
type LoadErrorType string

const (
	ErrSourceMissing      LoadErrorType = "source_missing"
	ErrMalformed          LoadErrorType = "malformed"
	ErrDuplicateParameter LoadErrorType = "duplicate_parameter"
	ErrInvalidDefinition  LoadErrorType = "invalid_definition"
)

// LoadError is the diagnostic error type returned by Load. It is fatal for
// the session; callers surface it immediately and do not retry.
type LoadError struct {
	Type    LoadErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// sourceFile is the on-disk shape of the standards database. The parameters
// list lives under "parameters"; "_metadata" carries optional provenance
// shown on generated reports.
type sourceFile struct {
	Metadata   sourceMetadata             `json:"_metadata"`
	Parameters []types.StandardDefinition `json:"parameters"`
}

type sourceMetadata struct {
	DBVersion   string `json:"db_version"`
	LastUpdated string `json:"last_updated"`
}

// Catalog is the immutable, indexed standards table. The zero value is not
// usable; construct via Load.
type Catalog struct {
	byName  map[string]*types.StandardDefinition
	ordered []types.StandardDefinition
	version string
}

// Load reads and indexes the standards table from the JSON file at path.
//
// It fails with a *LoadError if the file is missing, the JSON is malformed,
// a parameter appears twice (case-insensitive), or a definition violates the
// schema: empty name or unit, unrecognized severity, no bound at all, or
// minimum > maximum. Partial catalogs are rejected here rather than
// discovered at lookup time.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{
				Type:    ErrSourceMissing,
				Message: fmt.Sprintf("standards source %q does not exist", path),
				Err:     err,
			}
		}
		return nil, &LoadError{
			Type:    ErrSourceMissing,
			Message: fmt.Sprintf("standards source %q is not readable", path),
			Err:     err,
		}
	}

	var src sourceFile
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&src); err != nil {
		return nil, &LoadError{
			Type:    ErrMalformed,
			Message: fmt.Sprintf("standards source %q is not valid JSON", path),
			Err:     err,
		}
	}

	if len(src.Parameters) == 0 {
		return nil, &LoadError{
			Type:    ErrMalformed,
			Message: fmt.Sprintf("standards source %q contains no parameters", path),
		}
	}

	c := &Catalog{
		byName:  make(map[string]*types.StandardDefinition, len(src.Parameters)),
		ordered: make([]types.StandardDefinition, 0, len(src.Parameters)),
	}

	for i := range src.Parameters {
		def := src.Parameters[i]
		if err := validateDefinition(def); err != nil {
			return nil, err
		}

		key := types.NormalizeParameter(def.Name)
		if _, exists := c.byName[key]; exists {
			return nil, &LoadError{
				Type:    ErrDuplicateParameter,
				Message: fmt.Sprintf("parameter %q is defined more than once", def.Name),
			}
		}

		c.ordered = append(c.ordered, def)
		c.byName[key] = &c.ordered[len(c.ordered)-1]
	}

	sort.Slice(c.ordered, func(i, j int) bool {
		return types.NormalizeParameter(c.ordered[i].Name) < types.NormalizeParameter(c.ordered[j].Name)
	})
	// Re-point the index after sorting moved the backing entries.
	for i := range c.ordered {
		c.byName[types.NormalizeParameter(c.ordered[i].Name)] = &c.ordered[i]
	}

	if src.Metadata.DBVersion != "" && src.Metadata.LastUpdated != "" {
		c.version = fmt.Sprintf("v%s (updated %s)", src.Metadata.DBVersion, src.Metadata.LastUpdated)
	}

	return c, nil
}

// validateDefinition enforces the per-definition schema at load time.
func validateDefinition(def types.StandardDefinition) *LoadError {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return &LoadError{
			Type:    ErrInvalidDefinition,
			Message: "parameter with empty name",
		}
	}
	if strings.TrimSpace(def.Unit) == "" {
		return &LoadError{
			Type:    ErrInvalidDefinition,
			Message: fmt.Sprintf("parameter %q has no unit", name),
		}
	}
	if !def.Severity.IsValid() {
		return &LoadError{
			Type:    ErrInvalidDefinition,
			Message: fmt.Sprintf("parameter %q has unrecognized severity %q", name, def.Severity),
		}
	}
	if def.Minimum == nil && def.Maximum == nil {
		return &LoadError{
			Type:    ErrInvalidDefinition,
			Message: fmt.Sprintf("parameter %q defines neither minimum nor maximum", name),
		}
	}
	if def.Minimum != nil && def.Maximum != nil && *def.Minimum > *def.Maximum {
		return &LoadError{
			Type: ErrInvalidDefinition,
			Message: fmt.Sprintf("parameter %q has minimum %s greater than maximum %s",
				name, types.FormatValue(*def.Minimum), types.FormatValue(*def.Maximum)),
		}
	}
	return nil
}

// Lookup returns the standard definition for the given parameter name, or
// nil when the parameter is unknown. Matching is case-insensitive and
// whitespace-trimmed. An unknown parameter is a normal, expected outcome
// handled by the evaluator, not a catalog failure.
func (c *Catalog) Lookup(name string) *types.StandardDefinition {
	return c.byName[types.NormalizeParameter(name)]
}

// Parameters returns the full definition list sorted by name, for UI
// selectors and report appendices. The returned slice is a copy; the
// catalog itself stays immutable.
func (c *Catalog) Parameters() []types.StandardDefinition {
	out := make([]types.StandardDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of indexed parameters.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// Version returns a human-readable catalog version line for display in
// reports, e.g. "v3.1 (updated 2026-05-01)". Empty when the source carried
// no metadata.
func (c *Catalog) Version() string {
	return c.version
}
