package levelstream

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	dmath "github.com/yohamta/donburi/features/math"
)

type fakeAudio struct{ enabled bool }

func (a *fakeAudio) SetEnabled(enabled bool) { a.enabled = enabled }

type fakeInstance struct {
	origin    dmath.Vec2
	noSpawn   bool
	audio     *fakeAudio
	destroyed bool
	order     *[]float64
}

func (i *fakeInstance) SpawnAnchor() (dmath.Vec2, bool) {
	if i.noSpawn {
		return dmath.Vec2{}, false
	}
	return dmath.Vec2{X: i.origin.X + 2, Y: 1}, true
}

func (i *fakeInstance) BackgroundAudio() AudioNode { return i.audio }

func (i *fakeInstance) Destroy() {
	i.destroyed = true
	*i.order = append(*i.order, i.origin.X)
}

type fakeFactory struct {
	templates int
	noSpawn   bool
	fail      error
	instances []*fakeInstance
	destroyed []float64
	picked    []int
}

func (f *fakeFactory) Templates() int { return f.templates }

func (f *fakeFactory) Spawn(template int, origin dmath.Vec2) (Instance, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.picked = append(f.picked, template)
	inst := &fakeInstance{origin: origin, noSpawn: f.noSpawn, audio: &fakeAudio{enabled: true}, order: &f.destroyed}
	f.instances = append(f.instances, inst)
	return inst, nil
}

type fakePlayer struct {
	pos       dmath.Vec2
	teleports int
}

func (p *fakePlayer) Position() dmath.Vec2 { return p.pos }
func (p *fakePlayer) Teleport(at dmath.Vec2) {
	p.pos = at
	p.teleports++
}

type fakeCamera struct{ targets []dmath.Vec2 }

func (c *fakeCamera) SlideToTarget(p dmath.Vec2) { c.targets = append(c.targets, p) }

type fixture struct {
	m       *Manager
	factory *fakeFactory
	player  *fakePlayer
	camera  *fakeCamera
	hook    *test.Hook
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	f := &fixture{
		factory: &fakeFactory{templates: 3},
		player:  &fakePlayer{},
		camera:  &fakeCamera{},
		hook:    hook,
	}
	m, err := New(cfg, f.factory, f.player, f.camera, rand.New(rand.NewPCG(1, 2)), logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.m = m
	return f
}

func TestNewRejectsBadSetup(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		factory Factory
		want    error
	}{
		{"no_templates", DefaultConfig(), &fakeFactory{}, ErrNoTemplates},
		{"nil_factory", DefaultConfig(), nil, ErrNoTemplates},
		{"zero_width", Config{ChunkWidth: 0, MaxActiveLevels: 3}, &fakeFactory{templates: 1}, ErrInvalidConfig},
		{"zero_capacity", Config{ChunkWidth: 10, MaxActiveLevels: 0}, &fakeFactory{templates: 1}, ErrInvalidConfig},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.cfg, c.factory, nil, nil, nil, nil)
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
		})
	}
}

func TestStreamScenario(t *testing.T) {
	cfg := Config{ChunkWidth: 35.5, MaxActiveLevels: 3, SpawnTriggerDistance: 20, InitialChunks: 2}
	f := newFixture(t, cfg)

	if err := f.m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if f.m.NextSpawnX() != 71 || f.m.Len() != 2 {
		t.Fatalf("after start nextSpawnX=%v len=%d", f.m.NextSpawnX(), f.m.Len())
	}
	if f.player.teleports != 1 || f.player.pos.X != 2 {
		t.Fatalf("first chunk should teleport player to its anchor, got %+v", f.player)
	}

	f.m.Tick(0)
	if f.m.Spawned() != 2 {
		t.Fatalf("player at 0 should not spawn more, spawned=%d", f.m.Spawned())
	}

	f.m.Tick(52)
	if f.m.NextSpawnX() != 106.5 || f.m.Len() != 3 || f.m.Destroyed() != 0 {
		t.Fatalf("after x=52 nextSpawnX=%v len=%d destroyed=%d", f.m.NextSpawnX(), f.m.Len(), f.m.Destroyed())
	}

	f.m.Tick(87)
	if f.m.Len() != 3 || f.m.Destroyed() != 1 {
		t.Fatalf("fourth spawn should evict, len=%d destroyed=%d", f.m.Len(), f.m.Destroyed())
	}
	if !f.factory.instances[0].destroyed {
		t.Fatalf("chunk #0 should be destroyed first")
	}
	if got := f.m.Chunks()[0].Index; got != 1 {
		t.Fatalf("oldest tracked chunk = %d, want 1", got)
	}
}

func TestFIFOBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialChunks = 0
	f := newFixture(t, cfg)

	const k = 10
	for i := 0; i < k; i++ {
		if err := f.m.SpawnNext(); err != nil {
			t.Fatalf("SpawnNext: %v", err)
		}
		if f.m.Len() > cfg.MaxActiveLevels {
			t.Fatalf("queue length %d exceeds %d", f.m.Len(), cfg.MaxActiveLevels)
		}
	}

	if f.m.NextSpawnX() != float64(k)*cfg.ChunkWidth {
		t.Fatalf("nextSpawnX = %v, want %v", f.m.NextSpawnX(), float64(k)*cfg.ChunkWidth)
	}
	if f.m.Destroyed() != k-cfg.MaxActiveLevels {
		t.Fatalf("destroyed = %d, want %d", f.m.Destroyed(), k-cfg.MaxActiveLevels)
	}
	for i, x := range f.factory.destroyed {
		if want := float64(i) * cfg.ChunkWidth; x != want {
			t.Fatalf("destroy #%d at %v, want %v (oldest first)", i, x, want)
		}
	}
}

func TestSpawnFailureKeepsPosition(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.factory.fail = errors.New("bad template")

	if err := f.m.SpawnNext(); err == nil {
		t.Fatalf("expected spawn error")
	}
	if f.m.NextSpawnX() != 0 || f.m.Spawned() != 0 {
		t.Fatalf("failed spawn advanced state: %v %d", f.m.NextSpawnX(), f.m.Spawned())
	}
	if e := f.hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning, got %+v", e)
	}
}

func TestSectionTransitions(t *testing.T) {
	cfg := DefaultConfig()
	f := newFixture(t, cfg)
	if err := f.m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	steps := []struct {
		x           float64
		wantSection int
		wantSlides  int
	}{
		{0, 0, 0},
		{17, 0, 0},
		{18, 1, 1},
		{30, 1, 1},
		{10, 1, 1}, // walking back is ignored
		{50, 1, 1},
		{54, 2, 2},
	}
	var sections []int
	f.m.OnSection = func(s int) { sections = append(sections, s) }

	for _, s := range steps {
		f.m.Tick(s.x)
		if f.m.Section() != s.wantSection || len(f.camera.targets) != s.wantSlides {
			t.Fatalf("x=%v section=%d slides=%d, want %d/%d", s.x, f.m.Section(), len(f.camera.targets), s.wantSection, s.wantSlides)
		}
	}

	for i, target := range f.camera.targets {
		if want := float64(i+1) * cfg.ChunkWidth; target.X != want || target.Y != cfg.CameraY {
			t.Fatalf("slide %d target %+v, want x=%v", i, target, want)
		}
	}
	if len(sections) != 2 || sections[1] != 2 {
		t.Fatalf("OnSection calls = %v", sections)
	}

	chunks := f.factory.instances
	if chunks[0].audio.enabled || chunks[1].audio.enabled {
		t.Fatalf("vacated chunks should have audio disabled")
	}
	if !chunks[2].audio.enabled {
		t.Fatalf("current chunk audio should stay enabled")
	}
}

func TestMissingCameraIsLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m, err := New(DefaultConfig(), &fakeFactory{templates: 1}, &fakePlayer{}, nil, nil, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m.Tick(20)
	if m.Section() != 1 {
		t.Fatalf("section = %d", m.Section())
	}
	found := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "no camera to follow section" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing camera warning")
	}
}

func TestRestartCurrentLevel(t *testing.T) {
	t.Run("teleports_to_section_anchor", func(t *testing.T) {
		f := newFixture(t, DefaultConfig())
		if err := f.m.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}
		f.m.Tick(20)
		f.player.pos = dmath.Vec2{X: 30, Y: -10}

		if err := f.m.RestartCurrentLevel(); err != nil {
			t.Fatalf("RestartCurrentLevel: %v", err)
		}
		if f.player.pos.X != 35.5+2 || f.player.pos.Y != 1 {
			t.Fatalf("player at %+v", f.player.pos)
		}
	})

	t.Run("no_section_chunk", func(t *testing.T) {
		f := newFixture(t, DefaultConfig())
		err := f.m.RestartCurrentLevel()
		if !errors.Is(err, ErrNoSectionChunk) {
			t.Fatalf("err = %v", err)
		}
		if e := f.hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel {
			t.Fatalf("expected warning")
		}
	})

	t.Run("no_spawn_anchor", func(t *testing.T) {
		f := newFixture(t, DefaultConfig())
		f.factory.noSpawn = true
		if err := f.m.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}
		before := f.player.pos
		if err := f.m.RestartCurrentLevel(); !errors.Is(err, ErrNoSpawnAnchor) {
			t.Fatalf("err = %v", err)
		}
		if f.player.pos != before || f.player.teleports != 0 {
			t.Fatalf("player moved without anchor")
		}
	})
}

func TestSpawnPicksEveryTemplate(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	const spawns = 300
	for i := 0; i < spawns; i++ {
		if err := f.m.SpawnNext(); err != nil {
			t.Fatalf("SpawnNext: %v", err)
		}
	}

	counts := make([]int, f.factory.templates)
	for _, tpl := range f.factory.picked {
		if tpl < 0 || tpl >= len(counts) {
			t.Fatalf("template %d out of range", tpl)
		}
		counts[tpl]++
	}
	// uniform choice expects 100 each
	for tpl, n := range counts {
		if n < 60 || n > 140 {
			t.Errorf("template %d picked %d times of %d", tpl, n, spawns)
		}
	}

	chunks := f.m.Chunks()
	last := chunks[len(chunks)-1]
	if last.Template != f.factory.picked[len(f.factory.picked)-1] {
		t.Errorf("chunk template = %d, want %d", last.Template, f.factory.picked[len(f.factory.picked)-1])
	}
}
