package metadata

type ResourceType uint32

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeImage
	ResourceTypeMaterial
)

/** @brief A generic resource loaded from disk by an asset loader. */
type Resource struct {
	Name     string
	FullPath string
	DataSize uint64
	Data     interface{}
}

/** @brief Decoded image pixel data produced by the image loader. */
type ImageResourceData struct {
	ChannelCount uint8
	Width        uint32
	Height       uint32
	/** @brief Pixel data in RGBA order, 4 bytes per pixel. */
	Pixels []uint8
}

type ImageResourceParams struct {
	FlipY bool
}
