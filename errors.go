package lingopack

import "fmt"

// Errors exist below the facade boundary only: engine implementations and
// processors return them, the Translator logs and swallows them.

// EngineError indicates a failure at the translation engine boundary.
type EngineError struct {
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("engine error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("engine error: %s", e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// PackageError indicates a failure downloading or installing a language
// package.
type PackageError struct {
	Pair    LanguagePair
	Message string
	Cause   error
}

func (e *PackageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("package %s: %s: %v", e.Pair, e.Message, e.Cause)
	}
	return fmt.Sprintf("package %s: %s", e.Pair, e.Message)
}

func (e *PackageError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}
