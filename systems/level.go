package systems

import (
	"fmt"
	"math/rand/v2"

	"github.com/automoto/numeralrun/assets"
	"github.com/automoto/numeralrun/components"
	cfg "github.com/automoto/numeralrun/config"
	"github.com/automoto/numeralrun/levelstream"
	"github.com/automoto/numeralrun/systems/factory"
	"github.com/automoto/numeralrun/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// chunkFactory spawns chunk templates as ECS entries.
type chunkFactory struct {
	ecs       *ecs.ECS
	templates []assets.ChunkTemplate
}

func (f *chunkFactory) Templates() int { return len(f.templates) }

func (f *chunkFactory) Spawn(template int, origin math.Vec2) (levelstream.Instance, error) {
	if template < 0 || template >= len(f.templates) {
		return nil, fmt.Errorf("chunk template %d out of range [0, %d)", template, len(f.templates))
	}
	e := factory.CreateChunk(f.ecs, template, f.templates[template], origin)
	return &chunkInstance{ecs: f.ecs, entry: e}, nil
}

type chunkInstance struct {
	ecs   *ecs.ECS
	entry *donburi.Entry
}

func (c *chunkInstance) SpawnAnchor() (math.Vec2, bool) {
	data := components.Chunk.Get(c.entry)
	if !data.HasSpawn {
		return math.Vec2{}, false
	}
	return math.Vec2{X: data.Spawn.X, Y: data.Spawn.Y + cfg.Physics.TeleportMargin}, true
}

func (c *chunkInstance) BackgroundAudio() levelstream.AudioNode {
	data := components.Chunk.Get(c.entry)
	if data.Ambience == nil {
		return nil
	}
	return ambienceNode{entry: data.Ambience}
}

func (c *chunkInstance) Destroy() {
	factory.DestroyChunk(c.ecs, c.entry)
}

type ambienceNode struct {
	entry *donburi.Entry
}

func (a ambienceNode) SetEnabled(enabled bool) {
	if !a.entry.Valid() {
		return
	}
	components.Ambience.Get(a.entry).Enabled = enabled
}

// SetupLevelStream creates the level stream manager over the scene's player
// and camera and spawns the initial chunks. The player is teleported onto the
// first chunk.
func SetupLevelStream(ecs *ecs.ECS, templates []assets.ChunkTemplate, rng *rand.Rand) (*levelstream.Manager, error) {
	streamEntry, ok := components.Stream.First(ecs.World)
	if !ok {
		streamEntry = factory.CreateStream(ecs, 0)
	}
	stream := components.Stream.Get(streamEntry)

	playerEntry, ok := tags.Player.First(ecs.World)
	if !ok {
		return nil, fmt.Errorf("level stream: no player entity")
	}
	spaceEntry, _ := components.Space.First(ecs.World)

	var cam levelstream.Camera
	if cameraEntry, ok := components.Camera.First(ecs.World); ok {
		cam = components.Camera.Get(cameraEntry).Follow
	}

	m, err := levelstream.New(
		cfg.Level,
		&chunkFactory{ecs: ecs, templates: templates},
		playerTeleporter{player: playerEntry, space: spaceEntry},
		cam,
		rng,
		logger,
	)
	if err != nil {
		return nil, err
	}
	m.OnSection = func(section int) {
		if section > stream.BestSection {
			stream.BestSection = section
			SaveProgress(Progress{BestSection: section})
		}
	}
	stream.Manager = m

	if err := m.Start(); err != nil {
		return m, err
	}
	return m, nil
}

// UpdateLevelStream advances the chunk window and handles restarts.
func UpdateLevelStream(ecs *ecs.ECS) {
	streamEntry, ok := components.Stream.First(ecs.World)
	if !ok {
		return
	}
	stream := components.Stream.Get(streamEntry)
	if stream.Manager == nil {
		return
	}
	playerEntry, ok := tags.Player.First(ecs.World)
	if !ok {
		return
	}

	stream.Manager.Tick(components.Transform.Get(playerEntry).Position.X)

	input := getOrCreateInput(ecs)
	fell := components.Transform.Get(playerEntry).Position.Y < cfg.Physics.KillY
	if !fell && !GetAction(input, cfg.ActionRestart).JustPressed {
		return
	}
	// failures are logged by the manager
	if err := stream.Manager.RestartCurrentLevel(); err == nil {
		stream.Restarts++
		return
	}
	if fell {
		spaceEntry, _ := components.Space.First(ecs.World)
		recoverPlayer(stream.Manager, playerTeleporter{player: playerEntry, space: spaceEntry})
	}
}

// recoverPlayer teleports to the newest chunk with a spawn anchor so a fall
// outside any section chunk does not repeat forever.
func recoverPlayer(m *levelstream.Manager, p levelstream.Player) {
	chunks := m.Chunks()
	for i := len(chunks) - 1; i >= 0; i-- {
		if anchor, ok := chunks[i].SpawnAnchor(); ok {
			p.Teleport(anchor)
			logger.WithField("chunk", chunks[i].Index).Warn("recovered fallen player")
			return
		}
	}
}
