// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the Fragment front end.
//              Codes classify failures of source loading, lexing and parsing
//              as well as the tooling around them (configuration, history).
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-02
// Modified: 2026-10-09
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation with core error codes
// - 2026-10-09 v0.1.0: Lexer and parser codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Source loading
	CodeSourceNotFound     Code = "SOURCE_NOT_FOUND"
	CodeSourceUnreadable   Code = "SOURCE_UNREADABLE"
	CodeUnrecognizedSource Code = "UNRECOGNIZED_SOURCE"
	CodeNoSource           Code = "NO_SOURCE"

	// Lexical analysis
	CodeUnrecognizedCharacter Code = "UNRECOGNIZED_CHARACTER"
	CodeInvalidNumberLiteral  Code = "INVALID_NUMBER_LITERAL"
	CodeInvalidOperator       Code = "INVALID_OPERATOR_CHARACTER"

	// Parsing
	CodeExpectedNumber       Code = "EXPECTED_NUMBER"
	CodeExpectedExpression   Code = "EXPECTED_EXPRESSION"
	CodeFunctionNameNotFound Code = "FUNCTION_NAME_NOT_FOUND"
	CodeUnexpectedToken      Code = "UNEXPECTED_TOKEN"

	// Configuration and storage
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeDatabaseError Code = "DATABASE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeInvalidInput,
		CodeSourceNotFound, CodeSourceUnreadable, CodeUnrecognizedSource, CodeNoSource,
		CodeUnrecognizedCharacter, CodeInvalidNumberLiteral, CodeInvalidOperator,
		CodeExpectedNumber, CodeExpectedExpression, CodeFunctionNameNotFound, CodeUnexpectedToken,
		CodeConfigError, CodeInvalidConfig, CodeDatabaseError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeSourceNotFound, CodeSourceUnreadable, CodeUnrecognizedSource, CodeNoSource:
		return "source"
	case CodeUnrecognizedCharacter, CodeInvalidNumberLiteral, CodeInvalidOperator:
		return "lexer"
	case CodeExpectedNumber, CodeExpectedExpression, CodeFunctionNameNotFound, CodeUnexpectedToken:
		return "parser"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeDatabaseError:
		return "storage"
	default:
		return "generic"
	}
}

// IsSyntax reports whether the code describes a problem in the source text
// rather than in the environment.
func (c Code) IsSyntax() bool {
	switch c.Category() {
	case "lexer", "parser":
		return true
	}
	return c == CodeUnrecognizedSource
}
