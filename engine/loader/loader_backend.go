package loader

import (
	"io"

	"github.com/Carmen-Shannon/timmy/engine/model"
)

// loaderBackend loads models of one file format.
type loaderBackend interface {
	// Extensions returns the lower-case file extensions the backend accepts, including the dot.
	Extensions() []string

	// Load imports a model and its clips from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	Load(path string) (*model.ImportedModel, error)

	// LoadReader imports a model from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//   - isBinary: true for the binary variant of the format
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	LoadReader(r io.Reader, isBinary bool) (*model.ImportedModel, error)
}
