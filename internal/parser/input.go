package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jvalue/internal/errors"
	"github.com/mcncl/jvalue/internal/value"
)

// ParseReader reads the whole of reader into memory and parses it
func ParseReader(reader io.Reader, opts Options) (value.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return value.Value{}, errors.NewInputError("failed to read input", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return value.Value{}, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	return ParseWithOptions(string(data), opts)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, opts Options) (value.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return value.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return value.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return value.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return value.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return value.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return ParseReader(file, opts)
}
