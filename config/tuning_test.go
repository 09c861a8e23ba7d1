package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/automoto/numeralrun/movement"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestDecodeTuning(t *testing.T) {
	base := TuningFile{Feel: movement.DefaultTuning(), Level: Level, Camera: Camera}

	cases := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, got TuningFile)
	}{
		{
			name: "empty_keeps_base",
			yaml: "",
			check: func(t *testing.T, got TuningFile) {
				if got.Feel != base.Feel || got.Level != base.Level {
					t.Fatalf("empty overlay changed values")
				}
			},
		},
		{
			name: "partial_overlay",
			yaml: "feel:\n  jump:\n    coyoteTime: 0.2\n  deform:\n    jumpStretch: {x: 0.8, y: 1.2}\nlevel:\n  maxActiveLevels: 5\n",
			check: func(t *testing.T, got TuningFile) {
				if got.Feel.Jump.CoyoteTime != 0.2 {
					t.Fatalf("coyote = %v", got.Feel.Jump.CoyoteTime)
				}
				if got.Feel.Jump.BufferTime != base.Feel.Jump.BufferTime {
					t.Fatalf("untouched key changed: %v", got.Feel.Jump.BufferTime)
				}
				if got.Feel.Deform.JumpStretch.X != 0.8 || got.Feel.Deform.JumpStretch.Y != 1.2 {
					t.Fatalf("jump stretch = %+v", got.Feel.Deform.JumpStretch)
				}
				if got.Level.MaxActiveLevels != 5 || got.Level.ChunkWidth != base.Level.ChunkWidth {
					t.Fatalf("level = %+v", got.Level)
				}
			},
		},
		{name: "unknown_key", yaml: "feel:\n  jump:\n    coyote: 0.2\n", wantErr: true},
		{name: "invalid_value", yaml: "feel:\n  stats:\n    initialMass: 0\n", wantErr: true},
		{name: "invalid_level", yaml: "level:\n  chunkWidth: -1\n", wantErr: true},
		{name: "malformed", yaml: "feel: [", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := DecodeTuning(strings.NewReader(c.yaml), base)
			if c.wantErr {
				if !errors.Is(err, ErrInvalidTuning) {
					t.Fatalf("err = %v, want ErrInvalidTuning", err)
				}
				if got.Feel != base.Feel {
					t.Fatalf("failed decode should return base")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeTuning: %v", err)
			}
			c.check(t, got)
		})
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTuningWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("feel:\n  move:\n    acceleration: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger, _ := test.NewNullLogger()
	w, err := WatchTuning(path, CurrentTuning(), logger)
	if err != nil {
		t.Fatalf("WatchTuning: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("feel:\n  move:\n    acceleration: 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Updates:
		if got.Feel.Move.Acceleration != 80 {
			t.Fatalf("acceleration = %v", got.Feel.Move.Acceleration)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no reload received")
	}
}
