package systems

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/automoto/numeralrun/assets"
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// flatTemplate is a chunk with one floor across its full width.
func flatTemplate() assets.ChunkTemplate {
	return assets.ChunkTemplate{
		Name:     "flat",
		Width:    cfg.Level.ChunkWidth,
		Height:   20,
		Solids:   []assets.Rect{{X: 0, Y: 0, Width: cfg.Level.ChunkWidth, Height: 2}},
		Spawn:    dmath.Vec2{X: 3, Y: 2.5},
		HasSpawn: true,
	}
}

type testRun struct {
	ecs    *ecs.ECS
	player *donburi.Entry
}

func newTestRun(t *testing.T, templates ...assets.ChunkTemplate) *testRun {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateSpace(e,
		cfg.Physics.SpaceWidth(cfg.Level.ChunkWidth),
		cfg.Physics.SpaceHeight(),
		cfg.Physics.CellSize, cfg.Physics.CellSize,
		-cfg.Level.ChunkWidth,
	)
	factory.CreateInput(e)
	factory.CreateStream(e, 0)
	start := dmath.Vec2{X: 0, Y: cfg.Level.CameraY}
	factory.CreateCamera(e, start)
	player := factory.CreatePlayer(e, start)

	rng := rand.New(rand.NewPCG(1, 2))
	AttachController(e, player, rng)
	if _, err := SetupLevelStream(e, templates, rng); err != nil {
		t.Fatalf("SetupLevelStream: %v", err)
	}
	return &testRun{ecs: e, player: player}
}

func (r *testRun) step(n int) {
	for i := 0; i < n; i++ {
		UpdateLevelStream(r.ecs)
		UpdatePlayer(r.ecs)
		UpdatePhysics(r.ecs)
		UpdatePickups(r.ecs)
		UpdateCamera(r.ecs)
	}
}

func (r *testRun) bottom() float64 {
	body := components.Body.Get(r.player)
	_, y, _, _ := body.Box(components.Transform.Get(r.player).Position)
	return y
}

func (r *testRun) stream() *components.StreamData {
	entry, _ := components.Stream.First(r.ecs.World)
	return components.Stream.Get(entry)
}

func TestRunSettlesOnFirstChunk(t *testing.T) {
	r := newTestRun(t, flatTemplate())

	pos := components.Transform.Get(r.player).Position
	wantX := 3 - cfg.Level.ChunkWidth/2
	if math.Abs(pos.X-wantX) > 1e-9 {
		t.Fatalf("spawn x = %v, want %v", pos.X, wantX)
	}

	r.step(60)

	ctl := components.Player.Get(r.player).Controller
	if !ctl.Grounded() {
		t.Fatalf("player not grounded after settling, bottom %v", r.bottom())
	}
	if got := r.bottom(); math.Abs(got-2) > 1e-6 {
		t.Errorf("collider bottom = %v, want 2", got)
	}
	if got := r.stream().Manager.Len(); got != cfg.Level.InitialChunks {
		t.Errorf("chunks = %d, want %d", got, cfg.Level.InitialChunks)
	}
}

func TestRunWalkingCrossesSection(t *testing.T) {
	r := newTestRun(t, flatTemplate())
	r.step(30)

	getOrCreateInput(r.ecs).Axis = 1
	m := r.stream().Manager
	for i := 0; i < 1200 && m.Section() == 0; i++ {
		r.step(1)
	}
	if m.Section() != 1 {
		t.Fatalf("section = %d after walking, want 1", m.Section())
	}
	if got := r.stream().BestSection; got != 1 {
		t.Errorf("best section = %d, want 1", got)
	}

	cameraEntry, _ := components.Camera.First(r.ecs.World)
	target := components.Camera.Get(cameraEntry).Target()
	if target.X != cfg.Level.ChunkWidth || target.Y != cfg.Level.CameraY {
		t.Errorf("camera target = %v, want (%v, %v)", target, cfg.Level.ChunkWidth, cfg.Level.CameraY)
	}
	if math.Abs(r.bottom()-2) > 1e-6 {
		t.Errorf("player left the floor at the chunk seam, bottom %v", r.bottom())
	}
}

func TestRunRestartsAfterFall(t *testing.T) {
	r := newTestRun(t, flatTemplate())
	r.step(30)

	spaceEntry, _ := components.Space.First(r.ecs.World)
	components.Transform.Get(r.player).Position = dmath.Vec2{X: 0, Y: cfg.Physics.KillY - 1}
	syncObject(r.player, spaceEntry)

	UpdateLevelStream(r.ecs)

	if got := r.stream().Restarts; got != 1 {
		t.Fatalf("restarts = %d, want 1", got)
	}
	player := components.Player.Get(r.player)
	if !player.Teleported {
		t.Error("restart did not mark the player teleported")
	}
	pos := components.Transform.Get(r.player).Position
	want := dmath.Vec2{X: 3 - cfg.Level.ChunkWidth/2, Y: 2.5 + cfg.Physics.TeleportMargin}
	if math.Abs(pos.X-want.X) > 1e-9 || math.Abs(pos.Y-want.Y) > 1e-9 {
		t.Errorf("position after restart = %v, want %v", pos, want)
	}
}

func TestRunPickupChangesNumber(t *testing.T) {
	tpl := flatTemplate()
	tpl.Pickups = []assets.Pickup{
		{Rect: assets.Rect{X: 2.5, Y: 2, Width: 1, Height: 1}, Delta: 2},
	}
	r := newTestRun(t, tpl)
	ctl := components.Player.Get(r.player).Controller
	before := ctl.Number()

	r.step(30)

	if got := ctl.Number(); got != before+2 {
		t.Errorf("number = %d, want %d", got, before+2)
	}
	consumed := 0
	components.Pickup.Each(r.ecs.World, func(e *donburi.Entry) {
		if components.Pickup.Get(e).Consumed {
			consumed++
		}
	})
	if consumed != 1 {
		t.Errorf("consumed pickups = %d, want 1", consumed)
	}
}

func TestChunkDestroyRemovesObjects(t *testing.T) {
	r := newTestRun(t, flatTemplate())
	spaceEntry, _ := components.Space.First(r.ecs.World)
	space := components.Space.Get(spaceEntry)

	before := len(space.Objects())
	chunk, ok := components.Chunk.First(r.ecs.World)
	if !ok {
		t.Fatal("no chunk entity")
	}
	factory.DestroyChunk(r.ecs, chunk)

	if got := len(space.Objects()); got != before-1 {
		t.Errorf("objects after destroy = %d, want %d", got, before-1)
	}
}

func TestRecoverPlayerUsesNewestAnchor(t *testing.T) {
	r := newTestRun(t, flatTemplate())
	spaceEntry, _ := components.Space.First(r.ecs.World)
	m := r.stream().Manager

	recoverPlayer(m, playerTeleporter{player: r.player, space: spaceEntry})

	chunks := m.Chunks()
	want, _ := chunks[len(chunks)-1].SpawnAnchor()
	if got := components.Transform.Get(r.player).Position; got != want {
		t.Errorf("recovered to %v, want %v", got, want)
	}
}

func TestRunColliderReloadKeepsGround(t *testing.T) {
	tests := []struct {
		name    string
		height  float64
		offsetY float64
	}{
		{name: "shorter", height: 0.5},
		{name: "taller", height: 1.6},
		{name: "offset", height: 1, offsetY: 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRun(t, flatTemplate())
			r.step(60)

			tuning := cfg.Feel
			tuning.Collider.Height = tt.height
			tuning.Collider.OffsetY = tt.offsetY
			ApplyFeel(r.ecs, tuning)

			if got := r.bottom(); math.Abs(got-2) > 1e-6 {
				t.Errorf("bottom after reload = %v, want 2", got)
			}
			r.step(60)

			ctl := components.Player.Get(r.player).Controller
			if !ctl.Grounded() {
				t.Fatalf("player not grounded after collider reload, bottom %v", r.bottom())
			}
			if got, feet := r.bottom(), ctl.Feet().Y; math.Abs(got-feet) > 1e-6 {
				t.Errorf("controller feet %v disagree with collider bottom %v", feet, got)
			}
		})
	}
}
