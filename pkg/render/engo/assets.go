// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"
)

// Sprite names.
const (
	SpriteCharacter = "character"
	SpriteCanopy    = "canopy"
	SpriteBlock     = "block"
	SpriteShadow    = "shadow"
)

// spritePattern is a pixel mask; 1 marks a filled pixel.
type spritePattern [][]int

var spritePatterns = map[string]struct {
	tint    color.RGBA
	pattern spritePattern
}{
	SpriteCharacter: {color.RGBA{240, 200, 80, 255}, spritePattern{
		{0, 0, 1, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{0, 0, 1, 1, 1, 1, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{0, 1, 1, 0, 0, 1, 1, 0},
		{0, 1, 1, 0, 0, 1, 1, 0},
		{0, 1, 1, 0, 0, 1, 1, 0},
	}},
	SpriteCanopy: {color.RGBA{220, 70, 70, 255}, spritePattern{
		{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0},
		{0, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 0},
	}},
	SpriteBlock: {color.RGBA{90, 110, 140, 255}, spritePattern{
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
	}},
	SpriteShadow: {color.RGBA{0, 0, 0, 96}, spritePattern{
		{0, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 0},
	}},
}

// AssetManager builds the procedural sprites used by the demo scene.
type AssetManager struct {
	sprites map[string]common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[string]common.Drawable),
	}
}

// LoadAssets uploads every sprite. It needs a live GL context.
func (am *AssetManager) LoadAssets() error {
	for name := range spritePatterns {
		am.sprites[name] = convertToEngoTexture(SpriteImage(name))
	}
	return nil
}

// SpriteImage rasterizes a named sprite. Unknown names yield nil.
func SpriteImage(name string) *image.NRGBA {
	def, ok := spritePatterns[name]
	if !ok {
		return nil
	}
	height := len(def.pattern)
	width := 0
	if height > 0 {
		width = len(def.pattern[0])
	}
	img := createBaseImage(width, height)
	drawPatternOnImage(img, def.pattern, def.tint)
	return img
}

// createBaseImage creates a transparent image with the specified dimensions.
func createBaseImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	return img
}

// drawPatternOnImage paints the set pixels of pattern in tint, clipping to
// the image bounds.
func drawPatternOnImage(img *image.NRGBA, pattern spritePattern, tint color.RGBA) {
	bounds := img.Bounds()
	for y, row := range pattern {
		if y >= bounds.Dy() {
			break
		}
		for x, pixel := range row {
			if x >= bounds.Dx() {
				break
			}
			if pixel == 1 {
				img.Set(x, y, tint)
			}
		}
	}
}

func convertToEngoTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}

// Sprite returns a loaded sprite, falling back to the block sprite.
func (am *AssetManager) Sprite(name string) common.Drawable {
	if sprite, exists := am.sprites[name]; exists {
		return sprite
	}
	return am.sprites[SpriteBlock]
}
