package matrix

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/akaday/clspv/internal/builtin"
)

//go:embed schema.cue
var schemaCUE string

// File is the on-disk form of a matrix restriction. Omitted or empty axes
// cover their full domain.
type File struct {
	Operations []string `yaml:"operations" json:"operations"`
	Widths     []uint32 `yaml:"widths" json:"widths"`
	Signed     []bool   `yaml:"signed" json:"signed"`
	Vectors    []uint32 `yaml:"vectors" json:"vectors"`
}

// LoadError reports an invalid matrix file. Pos is set for CUE files when
// the error can be attributed to a source location.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads a matrix file. The format is chosen by extension: .yaml and
// .yml are decoded strictly (unknown keys are rejected), .cue is unified
// with the embedded schema before decoding.
func Load(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix file: %w", err)
	}

	var file *File
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		file, err = decodeYAML(data)
	case ".cue":
		file, err = decodeCUE(path, data)
	default:
		return nil, &LoadError{Field: "file", Message: fmt.Sprintf("unsupported matrix file extension %q: use .yaml, .yml or .cue", ext)}
	}
	if err != nil {
		return nil, err
	}

	return file.Matrix()
}

// Matrix applies the file's restrictions to the default matrix and
// validates the result.
func (f *File) Matrix() (*Matrix, error) {
	m := Default()
	if len(f.Operations) > 0 {
		m.Operations = make([]builtin.Operation, 0, len(f.Operations))
		for _, name := range f.Operations {
			m.Operations = append(m.Operations, builtin.Operation(name))
		}
	}
	if len(f.Widths) > 0 {
		m.Widths = f.Widths
	}
	if len(f.Signed) > 0 {
		m.Signed = f.Signed
	}
	if len(f.Vectors) > 0 {
		m.Vectors = f.Vectors
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeYAML(data []byte) (*File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		// An empty document means "everything".
		if err == io.EOF {
			return &file, nil
		}
		return nil, &LoadError{Field: "yaml", Message: err.Error()}
	}
	return &file, nil
}

func decodeCUE(path string, data []byte) (*File, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Matrix"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("matrix schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var file File
	if err := unified.Decode(&file); err != nil {
		return nil, formatCUEError(err)
	}
	return &file, nil
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Field: "cue", Message: err.Error()}
	}

	first := errs[0]
	loadErr := &LoadError{Field: "cue", Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
