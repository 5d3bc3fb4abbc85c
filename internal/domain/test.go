package domain

import "fmt"

// Kind selects which runner executes a test
type Kind string

const (
	// KindUnit runs tests through PHPUnit
	KindUnit Kind = "unit"
	// KindBrowser runs tests through Laravel Dusk
	KindBrowser Kind = "browser"
)

// ParseKind converts a stored kind tag back into a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindUnit, "":
		return KindUnit, nil
	case KindBrowser:
		return KindBrowser, nil
	}
	return KindUnit, fmt.Errorf("unknown test kind %q", s)
}

// RunRecord is the last test target that was executed
type RunRecord struct {
	FilePath     string `json:"filepath,omitempty"`     // Empty means no file filter (suite run)
	FunctionName string `json:"functionName,omitempty"` // Empty means the whole file
	Kind         Kind   `json:"-"`                      // Stored under its own key
}

// IsSuite reports whether the record targets the whole suite
func (r RunRecord) IsSuite() bool {
	return r.FilePath == "" && r.FunctionName == ""
}

// Scope describes what a record targets, for log and status output
func (r RunRecord) Scope() string {
	switch {
	case r.IsSuite():
		return "suite"
	case r.FunctionName == "":
		return "class"
	case r.FilePath == "":
		return "filter"
	}
	return "function"
}
