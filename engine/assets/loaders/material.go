package loaders

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
)

type MaterialLoader struct{}

func (ml *MaterialLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	mCfg, err := parseMaterialFile(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     "material",
		FullPath: path,
		DataSize: uint64(len(mCfg.Parameters)),
		Data:     mCfg,
	}, nil
}

// Unload drops the parsed configuration.
func (ml *MaterialLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return nil
	}
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

// parseMaterialFile decodes a TOML material definition and validates
// the parts the material system relies on. Parameter values are
// validated later, when the definition is applied.
func parseMaterialFile(filename string) (*metadata.MaterialConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	materialConfig := &metadata.MaterialConfig{}
	if err := toml.Unmarshal(data, materialConfig); err != nil {
		return nil, fmt.Errorf("invalid material file '%s': %w", filename, err)
	}

	if materialConfig.Name == "" {
		return nil, fmt.Errorf("material file '%s' is missing a name", filename)
	}
	if materialConfig.ShaderName == "" {
		return nil, fmt.Errorf("material file '%s' is missing a shader", filename)
	}
	for i := range materialConfig.Parameters {
		pc := &materialConfig.Parameters[i]
		if pc.Name == "" {
			return nil, fmt.Errorf("material file '%s': parameter %d is missing a name", filename, i)
		}
		if pc.Type == "" && pc.Binding == "" {
			return nil, fmt.Errorf("material file '%s': parameter '%s' needs a type or a binding", filename, pc.Name)
		}
	}

	return materialConfig, nil
}
