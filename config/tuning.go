package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/automoto/numeralrun/camera"
	"github.com/automoto/numeralrun/levelstream"
	"github.com/automoto/numeralrun/movement"
	"gopkg.in/yaml.v3"
)

var ErrInvalidTuning = errors.New("invalid tuning file")

// TuningFile is the YAML overlay for the feel, level and camera values.
// Keys that are absent keep their current value.
type TuningFile struct {
	Feel   movement.Tuning    `yaml:"feel"`
	Level  levelstream.Config `yaml:"level"`
	Camera camera.Config      `yaml:"camera"`
}

// CurrentTuning returns the active values as a TuningFile.
func CurrentTuning() TuningFile {
	return TuningFile{Feel: Feel, Level: Level, Camera: Camera}
}

// DecodeTuning overlays the YAML in r on top of base. Unknown keys are rejected.
func DecodeTuning(r io.Reader, base TuningFile) (TuningFile, error) {
	out := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	if err := out.Validate(); err != nil {
		return base, err
	}
	return out, nil
}

// LoadTuning reads path and overlays it on the active values.
func LoadTuning(path string) (TuningFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TuningFile{}, fmt.Errorf("read tuning %s: %w", path, err)
	}
	t, err := DecodeTuning(bytes.NewReader(data), CurrentTuning())
	if err != nil {
		return TuningFile{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

func (t TuningFile) Validate() error {
	if err := t.Feel.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTuning, err)
	}
	if err := t.Level.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTuning, err)
	}
	if t.Camera.SlideDuration < 0 {
		return fmt.Errorf("%w: camera slide duration %v", ErrInvalidTuning, t.Camera.SlideDuration)
	}
	return nil
}

// Apply makes t the active configuration.
func (t TuningFile) Apply() {
	Feel = t.Feel
	Level = t.Level
	Camera = t.Camera
}
