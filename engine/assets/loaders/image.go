package loaders

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	// Registered image decoders.
	_ "image/jpeg"
	_ "image/png"

	// BMP support comes from the extended image package.
	_ "golang.org/x/image/bmp"

	"github.com/spaghettifunk/prisma/engine/renderer/metadata"
)

type ImageLoader struct{}

// decodeImage loads an image from the specified path into flat RGBA
// pixel data.
func decodeImage(path string, flip bool) (*metadata.ImageResourceData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image '%s': %w", path, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]uint8, 0, width*height*4)
	if flip {
		for y := height - 1; y >= 0; y-- {
			row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
			pixels = append(pixels, row...)
		}
	} else {
		for y := 0; y < height; y++ {
			row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
			pixels = append(pixels, row...)
		}
	}

	return &metadata.ImageResourceData{
		ChannelCount: 4,
		Width:        uint32(width),
		Height:       uint32(height),
		Pixels:       pixels,
	}, nil
}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flip := false
	if typedParams, ok := params.(*metadata.ImageResourceParams); ok {
		flip = typedParams.FlipY
	}

	data, err := decodeImage(path, flip)
	if err != nil {
		return nil, err
	}

	return &metadata.Resource{
		Name:     "image",
		FullPath: path,
		DataSize: uint64(len(data.Pixels)),
		Data:     data,
	}, nil
}

// Unload drops the decoded pixel data. Holders that copied the pixels
// out keep their slices.
func (il *ImageLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return nil
	}
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
