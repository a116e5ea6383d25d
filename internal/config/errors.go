package config

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound      = errors.New("config file not found")
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrValidationFailed  = errors.New("validation failed")
)

// ParseError reports a file or environment variable that could not be
// decoded. Line and Column are zero when the decoder gives no position.
type ParseError struct {
	Source       string
	Line, Column int
	Message      string
	Err          error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Rule names the kind of check a setting failed.
type Rule string

const (
	RuleRange    Rule = "range"
	RuleEnum     Rule = "enum"
	RuleRequired Rule = "required"
	RuleOther    Rule = "other"
)

// ValidationError reports one invalid setting. Field is the dotted key as
// written in a config file, e.g. "history.max_entries". It matches
// ErrValidationFailed under errors.Is.
type ValidationError struct {
	Field   string
	Rule    Rule
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s = %v: %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }
