package diagnostics

import (
	"fmt"

	"github.com/sufu-ml/bridge/internal/token"
)

// Phase represents the pipeline stage where an error was raised.
type Phase string

const (
	PhaseLexer      Phase = "lexer"
	PhaseParser     Phase = "parser"
	PhaseNormalizer Phase = "normalizer"
	PhaseCodec      Phase = "codec"
)

type ErrorCode string

const (
	// Lexer errors
	ErrL001 ErrorCode = "L001" // invalid character
	ErrL002 ErrorCode = "L002" // unbalanced parenthesis

	// Parser errors
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected token, found something else
	ErrP003 ErrorCode = "P003" // no prefix parse function for token
	ErrP004 ErrorCode = "P004" // could not parse integer literal
	ErrP005 ErrorCode = "P005" // unexpected end of input

	// Normalizer errors
	ErrN001 ErrorCode = "N001" // unknown constructor in arity context
	ErrN002 ErrorCode = "N002" // nullary constructor encountered with an argument
	ErrN003 ErrorCode = "N003" // non-nullary constructor encountered without an argument
	ErrN004 ErrorCode = "N004" // unsupported command reached a serialization-only stage

	// Codec errors
	ErrJ001 ErrorCode = "J001" // unknown JSON tag
	ErrJ002 ErrorCode = "J002" // shape mismatch
	ErrJ003 ErrorCode = "J003" // Poly var index out of range
	ErrJ004 ErrorCode = "J004" // command is not serializable (TypeAlias, Config)
)

var errorTemplates = map[ErrorCode]string{
	ErrL001: "invalid character: '%s'",
	ErrL002: "unbalanced parenthesis",
	ErrP001: "unexpected token: expected '%s', but got '%s'",
	ErrP002: "expected next token to be '%s', but got '%s' instead",
	ErrP003: "no prefix parse function found for '%s'",
	ErrP004: "could not parse '%s' as an integer",
	ErrP005: "unexpected end of input, expected '%s'",
	ErrN001: "unknown constructor in arity context: '%s'",
	ErrN002: "nullary constructor '%s' encountered with an argument",
	ErrN003: "non-nullary constructor '%s' encountered without an argument",
	ErrN004: "command is not serializable: %s",
	ErrJ001: "unknown JSON tag: '%s'",
	ErrJ002: "shape mismatch at %s: %s",
	ErrJ003: "poly variable index %d out of range (have %d vars)",
	ErrJ004: "command is not serializable: %s",
	ErrorCode("E000"): "%s",
}

// DiagnosticError is the single error type surfaced at every pipeline
// boundary. Phase and Token pin the error to where and (when available)
// what token it happened at.
type DiagnosticError struct {
	Code  ErrorCode
	Phase Phase
	Args  []interface{}
	Token token.Token
	File  string
}

func (e *DiagnosticError) Error() string {
	template, ok := errorTemplates[e.Code]
	if !ok {
		return fmt.Sprintf("unknown error code: %s", e.Code)
	}

	message := fmt.Sprintf(template, e.Args...)

	prefix := ""
	if e.File != "" {
		prefix = fmt.Sprintf("%s: ", e.File)
	}

	phaseStr := ""
	if e.Phase != "" {
		phaseStr = fmt.Sprintf("[%s] ", e.Phase)
	}

	if e.Token.Line > 0 {
		return fmt.Sprintf("%s%serror at %d:%d [%s]: %s", prefix, phaseStr, e.Token.Line, e.Token.Column, e.Code, message)
	}
	return fmt.Sprintf("%s%serror [%s]: %s", prefix, phaseStr, e.Code, message)
}

// NewError creates a phase-less error with just a code and token.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Args: args}
}

// NewPhaseError creates an error tagged with the phase that raised it.
func NewPhaseError(phase Phase, code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Phase: phase, Token: tok, Args: args}
}

// NewLexError creates a lexer-phase error.
func NewLexError(code ErrorCode, line, column int, args ...interface{}) *DiagnosticError {
	return NewPhaseError(PhaseLexer, code, token.Token{Line: line, Column: column}, args...)
}

// NewParseError creates a parser-phase error.
func NewParseError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return NewPhaseError(PhaseParser, code, tok, args...)
}

// NewNormalizeError creates a normalizer-phase error (malformed program).
func NewNormalizeError(code ErrorCode, args ...interface{}) *DiagnosticError {
	return NewPhaseError(PhaseNormalizer, code, token.Token{}, args...)
}

// NewCodecError creates a JSON-codec-phase error.
func NewCodecError(code ErrorCode, args ...interface{}) *DiagnosticError {
	return NewPhaseError(PhaseCodec, code, token.Token{}, args...)
}

// WrapError attaches phase/token context to an arbitrary error, preserving
// it unchanged if it is already a DiagnosticError that carries that context.
func WrapError(phase Phase, tok token.Token, err error) *DiagnosticError {
	if de, ok := err.(*DiagnosticError); ok {
		if de.Phase == "" {
			de.Phase = phase
		}
		if de.Token.Line == 0 && tok.Line > 0 {
			de.Token = tok
		}
		return de
	}
	return &DiagnosticError{Code: ErrorCode("E000"), Phase: phase, Token: tok, Args: []interface{}{err.Error()}}
}
