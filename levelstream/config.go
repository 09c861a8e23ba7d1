package levelstream

import (
	"errors"
	"fmt"
)

var (
	ErrNoTemplates    = errors.New("no chunk templates configured")
	ErrInvalidConfig  = errors.New("invalid level stream config")
	ErrNoSectionChunk = errors.New("no chunk for current section")
	ErrNoSpawnAnchor  = errors.New("chunk has no spawn anchor")
)

// Config sizes the chunk window. Distances are world units.
type Config struct {
	ChunkWidth           float64 `yaml:"chunkWidth"`
	MaxActiveLevels      int     `yaml:"maxActiveLevels"`
	SpawnTriggerDistance float64 `yaml:"spawnTriggerDistance"`
	InitialChunks        int     `yaml:"initialChunks"`
	CameraY              float64 `yaml:"cameraY"`
}

func DefaultConfig() Config {
	return Config{
		ChunkWidth:           35.5,
		MaxActiveLevels:      3,
		SpawnTriggerDistance: 20,
		InitialChunks:        2,
		CameraY:              9,
	}
}

func (c Config) Validate() error {
	switch {
	case c.ChunkWidth <= 0:
		return fmt.Errorf("%w: chunk width %v", ErrInvalidConfig, c.ChunkWidth)
	case c.MaxActiveLevels < 1:
		return fmt.Errorf("%w: max active levels %d", ErrInvalidConfig, c.MaxActiveLevels)
	case c.InitialChunks < 0:
		return fmt.Errorf("%w: initial chunks %d", ErrInvalidConfig, c.InitialChunks)
	}
	return nil
}
