package assets

import (
	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
)

// Loader turns a file on disk into a typed resource.
type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	Unload(resource *metadata.Resource) error
}
