package systems

import (
	"encoding/json"
	"fmt"

	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"
)

const (
	settingsKey = "settings"
	progressKey = "progress"
)

// Store is the key/value save backend. *gdata.Manager satisfies it.
type Store interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

var store Store

// InitPersistence opens the gdata store for settings and progress.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.Settings.AppName,
	})
	if err != nil {
		logger.WithError(err).Warn("could not initialize persistence")
		return err
	}
	store = m
	return nil
}

// SetStore replaces the save backend. A nil store disables saving.
func SetStore(s Store) {
	store = s
}

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	SFXVolume       float64 `json:"sfxVolume"`
	AmbienceVolume  float64 `json:"ambienceVolume"`
	Muted           bool    `json:"muted"`
	Fullscreen      bool    `json:"fullscreen"`
	ResolutionIndex int     `json:"resolutionIndex"`
}

// Progress is the saved run progress.
type Progress struct {
	BestSection int `json:"bestSection"`
}

// LoadSettings returns nil without error when nothing is saved yet.
func LoadSettings() (*SavedSettings, error) {
	var s SavedSettings
	found, err := loadItem(settingsKey, &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	return saveItem(settingsKey, s)
}

// LoadProgress returns the zero Progress when nothing is saved yet.
func LoadProgress() (Progress, error) {
	var p Progress
	_, err := loadItem(progressKey, &p)
	return p, err
}

// SaveProgress writes p. Failures are logged, not returned.
func SaveProgress(p Progress) {
	if err := saveItem(progressKey, p); err != nil {
		logger.WithError(err).WithField("bestSection", p.BestSection).Warn("could not save progress")
	}
}

func loadItem(key string, v any) (bool, error) {
	if store == nil {
		return false, nil
	}
	data, err := store.LoadItem(key)
	if err != nil {
		logger.WithError(err).WithField("key", key).Warn("could not load item")
		return false, nil
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse saved %s: %w", key, err)
	}
	return true, nil
}

func saveItem(key string, v any) error {
	if store == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", key, err)
	}
	if err := store.SaveItem(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SaveCurrentSettings saves the scene's settings component.
func SaveCurrentSettings(s *components.SettingsData) {
	err := SaveSettings(&SavedSettings{
		SFXVolume:       s.SFXVolume,
		AmbienceVolume:  s.AmbienceVolume,
		Muted:           s.Muted,
		Fullscreen:      s.Fullscreen,
		ResolutionIndex: s.ResolutionIndex,
	})
	if err != nil {
		logger.WithError(err).Warn("could not save settings")
	}
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() components.SettingsData {
	return components.SettingsData{
		SFXVolume:       cfg.Audio.DefaultSFXVol,
		AmbienceVolume:  cfg.Audio.DefaultAmbVol,
		ResolutionIndex: cfg.Settings.DefaultResolutionIndex,
	}
}

// MergeSettings overlays saved values on the defaults.
func MergeSettings(saved *SavedSettings) components.SettingsData {
	s := DefaultSettings()
	if saved == nil {
		return s
	}
	s.SFXVolume = saved.SFXVolume
	s.AmbienceVolume = saved.AmbienceVolume
	s.Muted = saved.Muted
	s.Fullscreen = saved.Fullscreen
	s.ResolutionIndex = saved.ResolutionIndex
	return s
}

// ApplyWindowSettings sets fullscreen and, when windowed, the window size.
func ApplyWindowSettings(s components.SettingsData) {
	ebiten.SetFullscreen(s.Fullscreen)
	if !s.Fullscreen {
		res := cfg.Settings.ResolutionAt(s.ResolutionIndex)
		ebiten.SetWindowSize(res.Width, res.Height)
	}
}

// ApplySavedSettings copies s into the scene's settings and audio components.
func ApplySavedSettings(e *ecs.ECS, s components.SettingsData) {
	if entry, ok := components.Settings.First(e.World); ok {
		*components.Settings.Get(entry) = s
	}
	if entry, ok := components.Audio.First(e.World); ok {
		a := components.Audio.Get(entry)
		a.SFXVolume = s.SFXVolume
		a.AmbienceVolume = s.AmbienceVolume
		a.Muted = s.Muted
	}
}
