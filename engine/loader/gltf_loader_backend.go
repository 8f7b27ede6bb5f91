package loader

import (
	"io"

	"github.com/Carmen-Shannon/timmy/engine/model"
)

// gltfLoaderBackendImpl is the loaderBackend for .gltf and .glb files.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

var _ loaderBackend = &gltfLoaderBackendImpl{}

func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(),
	}
}

func (b *gltfLoaderBackendImpl) Extensions() []string {
	return []string{".gltf", ".glb"}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*model.ImportedModel, error) {
	return b.importer.Import(path)
}

func (b *gltfLoaderBackendImpl) LoadReader(r io.Reader, isBinary bool) (*model.ImportedModel, error) {
	return b.importer.ImportReader(r, isBinary)
}
