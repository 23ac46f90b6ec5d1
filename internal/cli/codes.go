package cli

import (
	"errors"
	"os"

	"github.com/akaday/clspv/internal/matrix"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeWriteFailed   = "E007" // Fixture write error
	ErrCodeInvalidMatrix = "E008" // Matrix file rejected
	ErrCodeLedger        = "E009" // Ledger open/read/write error
	ErrCodeOutOfDate     = "E010" // Fixtures missing or stale
)

// matrixErrorCode maps a matrix loading error to an error code.
func matrixErrorCode(err error) string {
	var loadErr *matrix.LoadError
	switch {
	case errors.As(err, &loadErr):
		return ErrCodeInvalidMatrix
	case errors.Is(err, os.ErrNotExist):
		return ErrCodeNotFound
	default:
		return ErrCodeGeneric
	}
}

// loadMatrix returns the default matrix, or the one described by path.
func loadMatrix(path string) (*matrix.Matrix, error) {
	if path == "" {
		return matrix.Default(), nil
	}
	return matrix.Load(path)
}
