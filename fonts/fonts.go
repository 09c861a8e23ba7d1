package fonts

import (
	"fmt"
	"math"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Regular FontName = "regular"
	Bold    FontName = "bold"
	Small   FontName = "small"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

var (
	fonts = map[FontName]font.Face{}
	// label faces by point size
	sized  = map[int]font.Face{}
	number *truetype.Font
)

// LoadDefaults registers the Go fonts used by the HUD and number label.
func LoadDefaults() error {
	if err := LoadFontWithSize(Regular, goregular.TTF, 10); err != nil {
		return err
	}
	if err := LoadFontWithSize(Bold, gobold.TTF, 14); err != nil {
		return err
	}
	if err := LoadFontWithSize(Small, goregular.TTF, 8); err != nil {
		return err
	}
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return fmt.Errorf("parse label font: %w", err)
	}
	number = f
	return nil
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) error {
	fontData, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
	return nil
}

// Label returns the number label face for size, rounded to whole points.
func Label(size float64) font.Face {
	if number == nil {
		panic("label font not loaded")
	}
	pt := int(math.Max(1, math.Round(size)))
	f, ok := sized[pt]
	if !ok {
		f = truetype.NewFace(number, &truetype.Options{Size: float64(pt)})
		sized[pt] = f
	}
	return f
}

func getFont(name FontName) font.Face {
	f, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}
