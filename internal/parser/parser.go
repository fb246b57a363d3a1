// Package parser validates raw JSON text and turns it into an ordered
// models.JSONValue tree.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/mcncl/cstyper/internal/errors"
	"github.com/mcncl/cstyper/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ValidateAndParse checks that raw is a single well-formed JSON document and
// returns its value tree. The root kind is not checked here.
func ValidateAndParse(raw string) (models.JSONValue, error) {
	return parseBytes([]byte(raw))
}

// Parse reads all of reader and parses it as JSON.
func Parse(reader io.Reader) (models.JSONValue, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.JSONValue{}, errors.NewInputError("failed to read input", err)
	}
	return parseBytes(data)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.JSONValue, error) {
	return ValidateAndParse(jsonString)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.JSONValue, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.JSONValue{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.JSONValue{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.JSONValue{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.JSONValue{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return parseBytes(data)
}

func parseBytes(data []byte) (models.JSONValue, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return models.JSONValue{}, errors.NewValidationError(errors.ErrMissingInput.Error(), errors.ErrMissingInput)
	}

	// encoding/json rejects trailing data and reports positions, so it acts
	// as the syntax gate before the tree is built.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.JSONValue{}, errors.NewSyntaxError(err)
	}

	value, dataType, _, err := jsonparser.Get(raw)
	if err != nil {
		return models.JSONValue{}, errors.NewSyntaxError(err)
	}
	return build(value, dataType)
}

// build converts one jsonparser value into a models.JSONValue.
func build(value []byte, dataType jsonparser.ValueType) (models.JSONValue, error) {
	switch dataType {
	case jsonparser.Null:
		return models.JSONValue{Kind: models.Null}, nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return models.JSONValue{}, errors.NewSyntaxError(err)
		}
		return models.JSONValue{Kind: models.Bool, Bool: b}, nil
	case jsonparser.Number:
		return models.JSONValue{Kind: models.Number, Number: string(value)}, nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return models.JSONValue{}, errors.NewSyntaxError(err)
		}
		return models.JSONValue{Kind: models.String, Str: s}, nil
	case jsonparser.Array:
		return buildArray(value)
	case jsonparser.Object:
		return buildObject(value)
	}
	return models.JSONValue{}, errors.NewSyntaxError(errors.Newf("unknown JSON value %q", value))
}

func buildArray(data []byte) (models.JSONValue, error) {
	arr := models.JSONValue{Kind: models.Array, Items: []models.JSONValue{}}
	var buildErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if buildErr != nil {
			return
		}
		if err != nil {
			buildErr = errors.NewSyntaxError(err)
			return
		}
		item, err := build(value, dataType)
		if err != nil {
			buildErr = err
			return
		}
		arr.Items = append(arr.Items, item)
	})
	if buildErr != nil {
		return models.JSONValue{}, buildErr
	}
	if err != nil {
		return models.JSONValue{}, errors.NewSyntaxError(err)
	}
	return arr, nil
}

// buildObject keeps members in document order. A repeated key keeps the
// position of its first occurrence and the value of its last.
func buildObject(data []byte) (models.JSONValue, error) {
	obj := models.JSONValue{Kind: models.Object, Members: []models.Member{}}
	index := make(map[string]int)
	// ObjectEach hands over keys already unescaped.
	err := jsonparser.ObjectEach(data, func(rawKey, value []byte, dataType jsonparser.ValueType, _ int) error {
		key := string(rawKey)
		member, err := build(value, dataType)
		if err != nil {
			return err
		}
		if i, ok := index[key]; ok {
			obj.Members[i].Value = member
			return nil
		}
		index[key] = len(obj.Members)
		obj.Members = append(obj.Members, models.Member{Key: key, Value: member})
		return nil
	})
	if err != nil {
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			return models.JSONValue{}, appErr
		}
		return models.JSONValue{}, errors.NewSyntaxError(err)
	}
	return obj, nil
}
