package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to read input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to read input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInvalidInput,
				Message: "unexpected end of JSON input",
				Err:     nil,
			},
			expected: "invalid_input: unexpected end of JSON input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	assert.Equal(t, wrappedErr, appErr.Unwrap())
	assert.ErrorIs(t, appErr, wrappedErr)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name:     "same type",
			appError: &AppError{Type: ErrorTypeInput, Message: "test message"},
			target:   &AppError{Type: ErrorTypeInput, Message: "different message", Err: errors.New("some error")},
			expected: true,
		},
		{
			name:     "different type",
			appError: &AppError{Type: ErrorTypeInput, Message: "test message"},
			target:   &AppError{Type: ErrorTypeInvalidInput, Message: "test message"},
			expected: false,
		},
		{
			name:     "not an AppError",
			appError: &AppError{Type: ErrorTypeInput, Message: "test message"},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Is(tt.target))
		})
	}
}

func TestIsInvalidInput(t *testing.T) {
	err := NewInvalidInputError("JSON syntax error at offset 2", ErrInvalidJSON)
	assert.True(t, IsInvalidInput(err))
	assert.True(t, IsInvalidInput(fmt.Errorf("generate: %w", err)))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	assert.False(t, IsInvalidInput(NewInputError("failed to read file", nil)))
	assert.False(t, IsInvalidInput(errors.New("plain")))
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "invalid input error",
			err:      NewInvalidInputError("JSON syntax error at offset 1", nil),
			expected: "Invalid JSON: JSON syntax error at offset 1",
		},
		{
			name:     "config error",
			err:      NewConfigError("unknown serialization \"xml\"", nil),
			expected: "Configuration error: unknown serialization \"xml\"",
		},
		{
			name:     "analysis error",
			err:      NewAnalysisError("failed to analyze type", nil),
			expected: "Type analysis error: failed to analyze type",
		},
		{
			name:     "generate error",
			err:      NewGenerateError("failed to generate code", nil),
			expected: "Code generation error: failed to generate code",
		},
		{
			name:     "format error",
			err:      NewFormatError("failed to format code", nil),
			expected: "Code formatting error: failed to format code",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide valid JSON data.",
		},
		{
			name:     "standard error - invalid JSON",
			err:      ErrInvalidJSON,
			expected: "Error: The input contains invalid JSON. Please check your JSON syntax.",
		},
		{
			name:     "standard error - conflicting input",
			err:      ErrConflictingInput,
			expected: "Error: Both --input and --url were given. Please choose one input source.",
		},
		{
			name:     "standard error - overwrite declined",
			err:      fmt.Errorf("writing user.dart: %w", ErrOverwriteDeclined),
			expected: "Error: The output file already exists and was not overwritten.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}
