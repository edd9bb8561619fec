package models

import "strings"

// CheckSpec is the declarative description of one check, as produced by the
// configuration loader. It is treated as immutable once built.
type CheckSpec struct {
	// Description is the human readable text shown in reports.
	Description string
	// CheckType names the registered check capability to run (ex: "MatchFileFragment").
	CheckType string
	// Arguments are passed to the check verbatim.
	Arguments []string
	// FileContext is the nested config path the check was declared under, if any.
	FileContext string
}

// DisplayName returns the description, falling back to the check type and its
// arguments when no description was configured.
func (s CheckSpec) DisplayName() string {
	if s.Description != "" {
		return s.Description
	}

	if len(s.Arguments) == 0 {
		return s.CheckType
	}

	return s.CheckType + " " + strings.Join(s.Arguments, " ")
}

// Argument returns the value following flag in the argument list, or "" if
// the flag isn't present or has no value.
func (s CheckSpec) Argument(flag string) string {
	for i, arg := range s.Arguments {
		if arg == flag && i+1 < len(s.Arguments) {
			return s.Arguments[i+1]
		}
		if v, ok := strings.CutPrefix(arg, flag+"="); ok {
			return v
		}
	}
	return ""
}
