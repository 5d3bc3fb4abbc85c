// Package command turns a resolved test target into the runner invocation.
package command

import (
	"errors"
	"fmt"
	"strings"

	"phprun/internal/config"
	"phprun/internal/domain"
)

// ErrInvalidFunctionName is returned for filters that are not plain PHP identifiers
var ErrInvalidFunctionName = errors.New("invalid function name")

// isIdentifier reports whether name is a PHP label. PHP works on bytes and
// lets every byte from 0x80 up into names, which covers UTF-8 letters.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= 0x80:
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Spec is a structured runner invocation
type Spec struct {
	Binary []string // Runner executable followed by its fixed arguments
	Filter string   // Function name, rendered as --filter=<name>$
	Target string   // Test file path
	Dir    string   // Working directory
}

// Args returns the argument vector for exec, binary first
func (s Spec) Args() []string {
	args := append([]string{}, s.Binary...)
	if s.Filter != "" {
		args = append(args, filterArg(s.Filter))
	}
	if s.Target != "" {
		args = append(args, s.Target)
	}
	return args
}

// Render returns the shell-ready command line.
// Plain words are left as they are, so ordinary paths render exactly as typed.
func (s Spec) Render() string {
	parts := make([]string, 0, len(s.Binary)+2)
	for _, b := range s.Binary {
		parts = append(parts, Quote(b))
	}
	if s.Filter != "" {
		// identifiers only, and a trailing $ is literal in sh
		parts = append(parts, filterArg(s.Filter))
	}
	if s.Target != "" {
		parts = append(parts, Quote(s.Target))
	}
	return strings.Join(parts, " ")
}

// filterArg anchors the name at the end only: testFoo does not pick up
// testFooBar, but a name ending in testFoo (e.g. mytestFoo) still matches.
func filterArg(name string) string {
	return "--filter=" + name + "$"
}

// Builder constructs runner invocations from the configured binary policy
type Builder struct {
	config *config.Config
}

// NewBuilder creates a new Builder
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{config: cfg}
}

// Build creates the invocation for kind, optionally narrowed to a function and a file.
// With neither the whole suite runs.
func (b *Builder) Build(kind domain.Kind, functionName, filePath, projectDir string) (Spec, error) {
	if functionName != "" && !isIdentifier(functionName) {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidFunctionName, functionName)
	}

	spec := Spec{
		Binary: b.binary(kind, projectDir),
		Filter: functionName,
		Target: filePath,
		Dir:    projectDir,
	}
	if len(spec.Binary) == 0 {
		return Spec{}, errors.New("no runner binary configured")
	}
	return spec, nil
}

func (b *Builder) binary(kind domain.Kind, projectDir string) []string {
	if kind == domain.KindBrowser {
		return []string{"php", b.config.GetArtisanPath(projectDir), "dusk", "--without-tty"}
	}
	if b.config.UseVendorBinary {
		return []string{b.config.GetPHPUnitPath(projectDir)}
	}
	return strings.Fields(b.config.BinaryPath)
}

// Quote single-quotes s when it contains characters the shell would interpret
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuoting) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("_-./:=+,@%", r)
}
