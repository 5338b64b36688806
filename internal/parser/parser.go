package parser

import (
	"encoding/json"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsontodart/internal/errors" // Custom errors package
	"github.com/mcncl/jsontodart/internal/models"
)

// Parse converts JSON data from an io.Reader into an IntermediateRepresentation.
// Object keys keep the order they appear in the document.
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	rootValue, err := decodeValue(decoder)
	if err != nil {
		return models.IntermediateRepresentation{}, wrapDecodeError(err)
	}

	// Anything other than whitespace after the first value is rejected.
	if _, err := decoder.Token(); err == nil {
		return models.IntermediateRepresentation{}, errors.NewInvalidInputError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.IntermediateRepresentation{}, errors.NewInvalidInputError(
			fmt.Sprintf("invalid trailing data after first JSON value: %v", err),
			errors.ErrInvalidJSON,
		)
	}

	_, isArray := rootValue.(models.Array)
	return models.IntermediateRepresentation{
		Root:        rootValue,
		RootIsArray: isArray,
	}, nil
}

// decodeValue reads one complete JSON value from the token stream.
func decodeValue(decoder *json.Decoder) (models.JSONValue, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := models.NewObject()
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return nil, truncated(err)
				}
				key, ok := keyToken.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyToken)
				}
				value, err := decodeValue(decoder)
				if err != nil {
					return nil, truncated(err)
				}
				obj.Set(key, value)
			}
			// Consume the closing brace
			if _, err := decoder.Token(); err != nil {
				return nil, truncated(err)
			}
			return obj, nil
		case '[':
			arr := models.Array{}
			for decoder.More() {
				value, err := decodeValue(decoder)
				if err != nil {
					return nil, truncated(err)
				}
				arr = append(arr, value)
			}
			// Consume the closing bracket
			if _, err := decoder.Token(); err != nil {
				return nil, truncated(err)
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case nil:
		return models.Null{}, nil
	case bool:
		return models.Bool(t), nil
	case string:
		return models.String(t), nil
	case json.Number:
		return numberValue(t)
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", t)
	}
}

// truncated reports a document that ends inside an object or array.
func truncated(err error) error {
	if stderrors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// numberValue keeps integer literals exact and falls back to float64 for everything else.
func numberValue(num json.Number) (models.JSONValue, error) {
	if i, err := num.Int64(); err == nil {
		return models.Int(i), nil
	}
	f, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", num.String(), err)
	}
	return models.Float(f), nil
}

func wrapDecodeError(err error) error {
	if stderrors.Is(err, io.EOF) {
		return errors.NewInvalidInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewInvalidInputError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewInvalidInputError(
			fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewInvalidInputError(fmt.Sprintf("failed to decode JSON: %v", err), errors.ErrInvalidJSON)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.IntermediateRepresentation{}, errors.NewInvalidInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ReadFile reads JSON text from a file path without parsing it.
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return string(data), nil
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	text, err := ReadFile(filePath)
	if err != nil {
		return models.IntermediateRepresentation{}, err
	}
	return ParseString(text)
}
