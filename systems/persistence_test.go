package systems

import (
	"errors"
	"testing"

	"github.com/automoto/numeralrun/components"
)

type memStore struct {
	items   map[string][]byte
	saveErr error
}

func (m *memStore) LoadItem(key string) ([]byte, error) { return m.items[key], nil }

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items[key] = data
	return nil
}

func useStore(t *testing.T) *memStore {
	t.Helper()
	s := &memStore{items: map[string][]byte{}}
	SetStore(s)
	t.Cleanup(func() { SetStore(nil) })
	return s
}

func TestSettingsRoundTrip(t *testing.T) {
	useStore(t)

	saved, err := LoadSettings()
	if err != nil || saved != nil {
		t.Fatalf("LoadSettings on empty store = %v, %v", saved, err)
	}
	if got := MergeSettings(nil); got != DefaultSettings() {
		t.Errorf("MergeSettings(nil) = %+v", got)
	}

	want := components.SettingsData{SFXVolume: 0.25, AmbienceVolume: 0.5, Muted: true, ResolutionIndex: 2}
	SaveCurrentSettings(&want)

	saved, err = LoadSettings()
	if err != nil || saved == nil {
		t.Fatalf("LoadSettings = %v, %v", saved, err)
	}
	if got := MergeSettings(saved); got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestProgressRoundTrip(t *testing.T) {
	useStore(t)

	p, err := LoadProgress()
	if err != nil || p.BestSection != 0 {
		t.Fatalf("LoadProgress on empty store = %+v, %v", p, err)
	}

	SaveProgress(Progress{BestSection: 7})
	p, err = LoadProgress()
	if err != nil || p.BestSection != 7 {
		t.Errorf("LoadProgress = %+v, %v", p, err)
	}
}

func TestCorruptSaveIsAnError(t *testing.T) {
	s := useStore(t)
	s.items[progressKey] = []byte("{")

	if _, err := LoadProgress(); err == nil {
		t.Error("expected an error for corrupt progress")
	}
}

func TestSaveErrorsAreWrapped(t *testing.T) {
	s := useStore(t)
	s.saveErr = errors.New("disk full")

	err := SaveSettings(&SavedSettings{})
	if !errors.Is(err, s.saveErr) {
		t.Errorf("SaveSettings error = %v, want wrapping %v", err, s.saveErr)
	}
}

func TestNoStoreIsNoop(t *testing.T) {
	SetStore(nil)
	if err := SaveSettings(&SavedSettings{}); err != nil {
		t.Errorf("SaveSettings without store = %v", err)
	}
	if p, err := LoadProgress(); err != nil || p != (Progress{}) {
		t.Errorf("LoadProgress without store = %+v, %v", p, err)
	}
}
