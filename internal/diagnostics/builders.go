package diagnostics

import (
	"strconv"

	"github.com/melihbirim/1im-pl/internal/source"
)

// Common diagnostic builders for the lexer

// UnexpectedCharacter creates a diagnostic for an unexpected character
func UnexpectedCharacter(filepath string, loc *source.Location, char rune) *Diagnostic {
	return NewError("unexpected character").
		WithCode(ErrUnexpectedCharacter).
		WithPrimaryLabel(filepath, loc, "unexpected character").
		WithHelp("remove this character or check if it's a typo")
}

// UnterminatedString creates a diagnostic for an unterminated string literal
func UnterminatedString(filepath string, loc *source.Location) *Diagnostic {
	return NewError("unterminated string literal").
		WithCode(ErrUnterminatedString).
		WithPrimaryLabel(filepath, loc, "string starts here").
		WithHelp("add a closing quote (\") to terminate the string")
}

// InvalidNumberLiteral creates a diagnostic for an invalid number
func InvalidNumberLiteral(filepath string, loc *source.Location, reason string) *Diagnostic {
	return NewError("invalid number literal").
		WithCode(ErrInvalidNumber).
		WithPrimaryLabel(filepath, loc, reason).
		WithHelp("check the number format")
}

// Common diagnostic builders for the parser

// UnexpectedToken creates a diagnostic for an unexpected token
func UnexpectedToken(filepath string, loc *source.Location, found, expected string) *Diagnostic {
	msg := "unexpected token"
	if expected != "" {
		msg = "expected " + expected + ", found " + found
	}

	return NewError(msg).
		WithCode(ErrUnexpectedToken).
		WithPrimaryLabel(filepath, loc, "unexpected token here")
}

// ExpectedToken creates a diagnostic for a missing expected token
func ExpectedToken(filepath string, loc *source.Location, expected string) *Diagnostic {
	return NewError("expected "+expected).
		WithCode(ErrExpectedToken).
		WithPrimaryLabel(filepath, loc, "expected "+expected+" here")
}

// MissingIdentifier creates a diagnostic for a missing identifier
func MissingIdentifier(filepath string, loc *source.Location) *Diagnostic {
	return NewError("expected identifier").
		WithCode(ErrMissingIdentifier).
		WithPrimaryLabel(filepath, loc, "expected identifier here")
}

// UnexpectedEOF creates a diagnostic for a construct left open at end of file
func UnexpectedEOF(filepath string, loc *source.Location, expected string) *Diagnostic {
	return NewError("unexpected end of file, expected "+expected).
		WithCode(ErrUnexpectedEOF).
		WithPrimaryLabel(filepath, loc, "file ends here")
}

// InvalidCallTarget creates a diagnostic for a call expression whose callee
// cannot be called (only bare identifiers naming functions are callable)
func InvalidCallTarget(filepath string, loc *source.Location) *Diagnostic {
	return NewError("invalid call target").
		WithCode(ErrInvalidCallTarget).
		WithPrimaryLabel(filepath, loc, "this expression cannot be called")
}

// ChainedComparison creates a diagnostic for a syntactically chained
// comparison such as `a < b < c`, which this grammar does not allow
func ChainedComparison(filepath string, loc *source.Location) *Diagnostic {
	return NewError("comparison operators do not chain").
		WithCode(ErrChainedComparison).
		WithPrimaryLabel(filepath, loc, "second comparison here").
		WithHelp("split into two comparisons joined with \"and\"")
}

// RangeOutsideForLoop creates a diagnostic for a range expression used
// anywhere other than the iterable position of a for loop
func RangeOutsideForLoop(filepath string, loc *source.Location) *Diagnostic {
	return NewError("range expression is only valid as a loop iterable").
		WithCode(ErrRangeOutsideForLoop).
		WithPrimaryLabel(filepath, loc, "range used here")
}

// Common diagnostic builders for the semantic analyzer

// TypeMismatch creates a diagnostic for type mismatch
func TypeMismatch(filepath string, loc *source.Location, expected, found string) *Diagnostic {
	return NewError("type mismatch").
		WithCode(ErrTypeMismatch).
		WithPrimaryLabel(filepath, loc, "expected "+expected+", found "+found)
}

// UndefinedSymbol creates a diagnostic for undefined symbol
func UndefinedSymbol(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewError("undefined symbol: "+name).
		WithCode(ErrUndefinedSymbol).
		WithPrimaryLabel(filepath, loc, "not found in this scope").
		WithHelp("check if the symbol is declared and spelled correctly")
}

// RedeclaredSymbol creates a diagnostic for redeclared symbol
func RedeclaredSymbol(filepath string, newLoc, prevLoc *source.Location, name string) *Diagnostic {
	return NewError(name+" is already declared").
		WithCode(ErrRedeclaredSymbol).
		WithPrimaryLabel(filepath, newLoc, "redeclared here").
		WithSecondaryLabel(filepath, prevLoc, "previously declared here").
		WithHelp("use a different name or remove one of the declarations")
}

// WrongArgumentCount creates a diagnostic for wrong number of arguments
func WrongArgumentCount(filepath string, loc *source.Location, expected, found int) *Diagnostic {
	return NewError("wrong number of arguments").
		WithCode(ErrWrongArgumentCount).
		WithPrimaryLabel(filepath, loc, "expected "+strconv.Itoa(expected)+" arguments, found "+strconv.Itoa(found))
}

// NotCallable creates a diagnostic for calling a name that isn't a function
func NotCallable(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewError(name+" is not a function").
		WithCode(ErrNotCallable).
		WithPrimaryLabel(filepath, loc, "called here")
}

// MissingReturn creates a diagnostic for a function that doesn't return on
// every path
func MissingReturn(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewError("function "+name+" does not return a value on every path").
		WithCode(ErrMissingReturn).
		WithPrimaryLabel(filepath, loc, "missing return here").
		WithHelp("add a return statement covering this path")
}

// BreakOutsideLoop creates a diagnostic for break used outside any loop
func BreakOutsideLoop(filepath string, loc *source.Location) *Diagnostic {
	return NewError("break outside of a loop").
		WithCode(ErrBreakOutsideLoop).
		WithPrimaryLabel(filepath, loc, "break here")
}

// ContinueOutsideLoop creates a diagnostic for continue used outside any loop
func ContinueOutsideLoop(filepath string, loc *source.Location) *Diagnostic {
	return NewError("continue outside of a loop").
		WithCode(ErrContinueOutsideLoop).
		WithPrimaryLabel(filepath, loc, "continue here")
}

// InvalidTryTarget creates a diagnostic for try applied to a non-error-union
// expression
func InvalidTryTarget(filepath string, loc *source.Location, found string) *Diagnostic {
	return NewError("try requires an error-union expression, found "+found).
		WithCode(ErrInvalidTryTarget).
		WithPrimaryLabel(filepath, loc, "try applied here")
}

// UnhandledError creates a diagnostic for an error-union value that is
// neither propagated with try nor handled with try/catch
func UnhandledError(filepath string, loc *source.Location) *Diagnostic {
	return NewError("error value must be handled with try or try/catch").
		WithCode(ErrUnhandledError).
		WithPrimaryLabel(filepath, loc, "unhandled error-union value here")
}

// InvalidParallelBody creates a diagnostic for a parallel block containing a
// statement other than a zero-argument call
func InvalidParallelBody(filepath string, loc *source.Location) *Diagnostic {
	return NewError("parallel blocks may only contain zero-argument calls").
		WithCode(ErrInvalidParallelBody).
		WithPrimaryLabel(filepath, loc, "not a zero-argument call")
}

// ParallelWhile creates a diagnostic for `parallel` applied to a while loop
func ParallelWhile(filepath string, loc *source.Location) *Diagnostic {
	return NewError("parallel cannot be applied to a while loop").
		WithCode(ErrParallelWhile).
		WithPrimaryLabel(filepath, loc, "parallel while here").
		WithHelp("use \"parallel for\" over a range instead")
}

// NotIndexable creates a diagnostic for indexing a non-array/slice value
func NotIndexable(filepath string, loc *source.Location, found string) *Diagnostic {
	return NewError("cannot index into "+found).
		WithCode(ErrNotIndexable).
		WithPrimaryLabel(filepath, loc, "indexed here")
}

// IndexNotInteger creates a diagnostic for an index expression that isn't an
// integer type
func IndexNotInteger(filepath string, loc *source.Location, found string) *Diagnostic {
	return NewError("index must be an integer, found "+found).
		WithCode(ErrIndexNotInteger).
		WithPrimaryLabel(filepath, loc, "index here")
}

// Codegen capability builder

// UnsupportedConstruct creates a diagnostic for a construct the code
// generator cannot lower, always a symptom of a gap earlier in the pipeline
func UnsupportedConstruct(filepath string, loc *source.Location, what string) *Diagnostic {
	return NewError("code generator cannot lower "+what).
		WithCode(ErrUnsupportedConstruct).
		WithPrimaryLabel(filepath, loc, "here")
}

// Resource builder

// OutOfMemory creates a diagnostic for an arena allocation that could not be
// satisfied
func OutOfMemory(reason string) *Diagnostic {
	return NewError("out of memory: " + reason).
		WithCode(ErrOutOfMemory)
}
