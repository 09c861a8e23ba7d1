package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/lafriks/go-tiled"
	"github.com/yohamta/donburi/features/math"
)

//go:embed all:chunks
var chunkFS embed.FS

var ErrNoChunks = errors.New("no chunk templates found")

// Rect is an axis-aligned box in world units, Y up. X, Y is the bottom-left
// corner relative to the chunk origin.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the midpoint of r.
func (r Rect) Center() math.Vec2 {
	return math.Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Pickup changes the player's number when touched. Delta is added unless
// Negate is set.
type Pickup struct {
	Rect
	Delta  int
	Negate bool
}

// ChunkTemplate is one loaded chunk map. Positions are relative to the
// chunk origin at its bottom-left corner.
type ChunkTemplate struct {
	Name   string
	Width  float64
	Height float64
	Solids []Rect

	Spawn    math.Vec2
	HasSpawn bool

	Ambience    string
	AmbienceAt  math.Vec2
	HasAmbience bool

	Pickups []Pickup
}

// EmbeddedChunks loads the chunk templates built into the binary.
func EmbeddedChunks(pixelsPerUnit float64) ([]ChunkTemplate, error) {
	return LoadChunks(chunkFS, "chunks", pixelsPerUnit)
}

func MustLoadChunks(pixelsPerUnit float64) []ChunkTemplate {
	chunks, err := EmbeddedChunks(pixelsPerUnit)
	if err != nil {
		panic(err)
	}
	return chunks
}

// LoadChunks reads every .tmx map in dir, sorted by file name.
func LoadChunks(fsys fs.FS, dir string, pixelsPerUnit float64) ([]ChunkTemplate, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read chunk directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".tmx" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	chunks := make([]ChunkTemplate, 0, len(names))
	for _, name := range names {
		c, err := LoadChunk(fsys, path.Join(dir, name), pixelsPerUnit)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoChunks, dir)
	}
	return chunks, nil
}

// LoadChunk parses one map. Tiled's pixel space is Y down; the result is
// flipped so that Y grows upward from the map's bottom edge.
func LoadChunk(fsys fs.FS, file string, pixelsPerUnit float64) (ChunkTemplate, error) {
	levelMap, err := tiled.LoadFile(file, tiled.WithFileSystem(fsys))
	if err != nil {
		return ChunkTemplate{}, fmt.Errorf("load chunk %s: %w", file, err)
	}

	heightPx := float64(levelMap.Height * levelMap.TileHeight)
	toRect := func(o *tiled.Object) Rect {
		return Rect{
			X:      o.X / pixelsPerUnit,
			Y:      (heightPx - o.Y - o.Height) / pixelsPerUnit,
			Width:  o.Width / pixelsPerUnit,
			Height: o.Height / pixelsPerUnit,
		}
	}
	toPoint := func(o *tiled.Object) math.Vec2 {
		return math.Vec2{X: o.X / pixelsPerUnit, Y: (heightPx - o.Y) / pixelsPerUnit}
	}

	chunk := ChunkTemplate{
		Name:   path.Base(file),
		Width:  float64(levelMap.Width*levelMap.TileWidth) / pixelsPerUnit,
		Height: heightPx / pixelsPerUnit,
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Solids":
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					continue
				}
				chunk.Solids = append(chunk.Solids, toRect(o))
			}
		case "PlayerSpawn":
			// First spawn wins
			if len(og.Objects) > 0 && !chunk.HasSpawn {
				chunk.Spawn = toPoint(og.Objects[0])
				chunk.HasSpawn = true
			}
		case "BackgroundAudio":
			for _, o := range og.Objects {
				sound := o.Properties.GetString("sound")
				if sound == "" {
					continue
				}
				chunk.Ambience = sound
				chunk.AmbienceAt = toPoint(o)
				chunk.HasAmbience = true
				break
			}
		case "Numbers":
			for _, o := range og.Objects {
				chunk.Pickups = append(chunk.Pickups, Pickup{
					Rect:   toRect(o),
					Delta:  o.Properties.GetInt("delta"),
					Negate: o.Properties.GetBool("negate"),
				})
			}
		}
	}

	return chunk, nil
}
