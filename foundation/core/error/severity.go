// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger maps severities
//              to log levels when reporting structured errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-02
// Modified: 2026-10-02
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem in user input, e.g. a syntax error
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates an environment failure such as an unreadable file
	SeverityHigh

	// SeverityCritical indicates an internal invariant was broken
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeSourceNotFound, CodeSourceUnreadable, CodeDatabaseError, CodeConfigError:
		return SeverityHigh

	case CodeUnrecognizedSource, CodeUnrecognizedCharacter, CodeInvalidNumberLiteral,
		CodeInvalidOperator, CodeExpectedNumber, CodeExpectedExpression,
		CodeFunctionNameNotFound, CodeUnexpectedToken, CodeInvalidInput, CodeInvalidConfig:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
