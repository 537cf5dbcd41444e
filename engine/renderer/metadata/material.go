package metadata

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/** @brief Tracks how many holders reference an acquired material. */
type MaterialReference struct {
	ReferenceCount uint64
	Handle         uint32
	AutoRelease    bool
}

/**
 * @brief A single parameter entry of a material definition file.
 * Exactly one of Value, Path or Binding is meaningful, depending
 * on Type.
 */
type ParameterConfig struct {
	/** @brief The name of the effect uniform this parameter feeds. */
	Name string `toml:"name"`
	/** @brief One of: float, int, vec2, vec3, vec4, mat4, sampler. */
	Type string `toml:"type"`
	/** @brief Flat component values for numeric types. */
	Value []float32 `toml:"value,omitempty"`
	/** @brief Element count for array-valued parameters. Defaults to 1. */
	Count uint32 `toml:"count,omitempty"`
	/** @brief Texture resource path for sampler parameters. */
	Path string `toml:"path,omitempty"`
	/** @brief Indicates if mipmaps should be generated for the sampler texture. */
	GenerateMipmaps bool `toml:"generate_mipmaps,omitempty"`
	/** @brief Node auto-binding identifier, e.g. "&Node::getScaleX". */
	Binding string `toml:"binding,omitempty"`
}

/**
 * @brief Material configuration typically loaded from
 * a file or created in code to load a material from.
 */
type MaterialConfig struct {
	/** @brief The name of the material. */
	Name string `toml:"name"`
	/** @brief The name of the effect (shader) the material binds against. */
	ShaderName string `toml:"shader"`
	/** @brief Indicates if the material should be automatically released when no references to it remain. */
	AutoRelease bool `toml:"auto_release,omitempty"`
	/** @brief The typed parameters pushed into the effect on every bind. */
	Parameters []ParameterConfig `toml:"parameters,omitempty"`
}
