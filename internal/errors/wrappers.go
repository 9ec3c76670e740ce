package errors

import "fmt"

// ErrInvalidMacroArgument matches every argument validation failure via errors.Is
var ErrInvalidMacroArgument = New(InvalidMacroArgumentCode, "invalid macro argument")

// ErrUnknownMacro matches every lookup of an unregistered macro via errors.Is
var ErrUnknownMacro = New(UnknownMacroCode, "unknown macro")

// InvalidMacroArgument creates the error raised when a macro invocation's
// arguments cannot be expanded
func InvalidMacroArgument(macro, reason string) *BaseError {
	return Newf(InvalidMacroArgumentCode, "invalid argument to #%s: %s", macro, reason).
		WithContext("macro", macro)
}

// UnknownMacro creates the error raised for an invocation with no registered expander
func UnknownMacro(name string, known []string) *BaseError {
	err := Newf(UnknownMacroCode, "unknown macro #%s", name).
		WithContext("macro", name)
	for _, k := range known {
		err.WithSuggestion(fmt.Sprintf("did you mean #%s?", k))
	}
	return err
}

// SyntaxError creates an error for malformed directive source
func SyntaxError(loc SourceLocation, format string, args ...interface{}) *BaseError {
	return Newf(SyntaxErrorCode, format, args...).WithLocation(loc)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName).
		WithContext("operation", operation)
}

// ConfigurationError creates a configuration error
func ConfigurationError(key, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", key, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_key", key)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(source, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, source)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_source", source).
		WithContext("operation", operation)
}

// StaleOutput creates the error reported by check mode for out-of-date files
func StaleOutput(paths []string) *BaseError {
	return Newf(StaleOutputCode, "%d file(s) have out-of-date generated regions", len(paths)).
		WithContext("paths", paths).
		WithSuggestion("run navgen generate to refresh the generated regions")
}

// AddToMultiple adds an error to a MultipleErrors, creating it if nil
func AddToMultiple(multiple **MultipleErrors, err NavgenError) {
	if *multiple == nil {
		*multiple = NewMultipleErrors()
	}
	(*multiple).Add(err)
}
