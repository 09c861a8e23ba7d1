// Package levelstream keeps a bounded window of level chunks ahead of the
// player and reports section transitions to the camera.
package levelstream

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	dmath "github.com/yohamta/donburi/features/math"
	"gopkg.in/eapache/queue.v1"
)

// Chunk is a tracked chunk instance.
type Chunk struct {
	Index    int
	SpawnX   float64
	Template int

	instance Instance
	anchor   dmath.Vec2
	hasSpawn bool
	audio    AudioNode
}

// SpawnAnchor returns the cached player spawn point.
func (c *Chunk) SpawnAnchor() (dmath.Vec2, bool) {
	return c.anchor, c.hasSpawn
}

// Manager owns the chunk FIFO. It is not safe for concurrent use.
type Manager struct {
	cfg     Config
	factory Factory
	player  Player
	camera  Camera
	rng     *rand.Rand
	log     logrus.FieldLogger

	chunks     *queue.Queue
	nextIndex  int
	nextSpawnX float64
	section    int

	spawned   int
	destroyed int

	// OnSection is called after every section increase.
	OnSection func(section int)
}

func New(cfg Config, factory Factory, player Player, camera Camera, rng *rand.Rand, log logrus.FieldLogger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if factory == nil || factory.Templates() == 0 {
		return nil, ErrNoTemplates
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		cfg:     cfg,
		factory: factory,
		player:  player,
		camera:  camera,
		rng:     rng,
		log:     log.WithField("system", "levelstream"),
		chunks:  queue.New(),
	}, nil
}

// Start spawns the initial chunks.
func (m *Manager) Start() error {
	for i := 0; i < m.cfg.InitialChunks; i++ {
		if _, err := m.spawnNext(); err != nil {
			return err
		}
	}
	return nil
}

// SpawnNext instantiates one random template at the next spawn position.
func (m *Manager) SpawnNext() error {
	_, err := m.spawnNext()
	return err
}

func (m *Manager) spawnNext() (teleported bool, err error) {
	template := m.rng.IntN(m.factory.Templates())
	origin := dmath.Vec2{X: m.nextSpawnX, Y: 0}

	inst, err := m.factory.Spawn(template, origin)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"chunk":    m.nextIndex,
			"template": template,
			"x":        m.nextSpawnX,
		}).WithError(err).Warn("chunk spawn failed")
		return false, fmt.Errorf("spawn chunk %d: %w", m.nextIndex, err)
	}

	c := &Chunk{
		Index:    m.nextIndex,
		SpawnX:   m.nextSpawnX,
		Template: template,
		instance: inst,
		audio:    inst.BackgroundAudio(),
	}
	c.anchor, c.hasSpawn = inst.SpawnAnchor()

	m.chunks.Add(c)
	m.spawned++
	m.nextIndex++
	m.nextSpawnX = float64(m.nextIndex) * m.cfg.ChunkWidth

	m.log.WithFields(logrus.Fields{
		"chunk":    c.Index,
		"template": template,
		"x":        c.SpawnX,
	}).Debug("chunk spawned")

	if m.spawned == 1 {
		teleported = m.teleportTo(c)
	}

	for m.chunks.Length() > m.cfg.MaxActiveLevels {
		m.evictOldest()
	}
	return teleported, nil
}

func (m *Manager) evictOldest() {
	old := m.chunks.Remove().(*Chunk)
	old.instance.Destroy()
	m.destroyed++
	m.log.WithField("chunk", old.Index).Debug("chunk evicted")
}

func (m *Manager) teleportTo(c *Chunk) bool {
	if !c.hasSpawn {
		m.log.WithField("chunk", c.Index).Warn("chunk has no player spawn")
		return false
	}
	if m.player == nil {
		return false
	}
	m.player.Teleport(c.anchor)
	return true
}

// Tick spawns at most one chunk when the player is within the trigger
// distance of the next spawn point, then tracks the section index. It
// reports whether the player was teleported.
func (m *Manager) Tick(playerX float64) bool {
	teleported := false
	if playerX > m.nextSpawnX-m.cfg.SpawnTriggerDistance {
		// failures are logged in spawnNext and retried next tick
		teleported, _ = m.spawnNext()
	}
	if teleported {
		playerX = m.player.Position().X
	}
	m.trackSection(playerX)
	return teleported
}

// SectionFor returns the chunk section containing x.
func (m *Manager) SectionFor(x float64) int {
	w := m.cfg.ChunkWidth
	return int(math.Floor((x + w/2) / w))
}

// trackSection only reacts to increases. Walking back across a boundary
// leaves the camera and ambience where they are.
func (m *Manager) trackSection(playerX float64) {
	idx := m.SectionFor(playerX)
	if idx <= m.section {
		return
	}
	prev := m.section
	m.section = idx

	log := m.log.WithField("section", idx)
	if m.camera != nil {
		m.camera.SlideToTarget(dmath.Vec2{X: float64(idx) * m.cfg.ChunkWidth, Y: m.cfg.CameraY})
	} else {
		log.Warn("no camera to follow section")
	}

	if c := m.chunkAt(float64(prev) * m.cfg.ChunkWidth); c != nil && c.audio != nil {
		c.audio.SetEnabled(false)
	}

	log.Info("section reached")
	if m.OnSection != nil {
		m.OnSection(idx)
	}
}

func (m *Manager) chunkAt(x float64) *Chunk {
	for i := 0; i < m.chunks.Length(); i++ {
		c := m.chunks.Get(i).(*Chunk)
		if math.Abs(c.SpawnX-x) < m.cfg.ChunkWidth/2 {
			return c
		}
	}
	return nil
}

// RestartCurrentLevel teleports the player back to the current section's spawn.
func (m *Manager) RestartCurrentLevel() error {
	log := m.log.WithField("section", m.section)
	c := m.chunkAt(float64(m.section) * m.cfg.ChunkWidth)
	if c == nil {
		log.Warn(ErrNoSectionChunk.Error())
		return ErrNoSectionChunk
	}
	if !c.hasSpawn {
		log.WithField("chunk", c.Index).Warn(ErrNoSpawnAnchor.Error())
		return fmt.Errorf("chunk %d: %w", c.Index, ErrNoSpawnAnchor)
	}
	if m.player != nil {
		m.player.Teleport(c.anchor)
	}
	return nil
}

// Chunks returns the tracked chunks oldest first.
func (m *Manager) Chunks() []*Chunk {
	out := make([]*Chunk, m.chunks.Length())
	for i := range out {
		out[i] = m.chunks.Get(i).(*Chunk)
	}
	return out
}

func (m *Manager) Len() int            { return m.chunks.Length() }
func (m *Manager) NextSpawnX() float64 { return m.nextSpawnX }
func (m *Manager) Section() int        { return m.section }
func (m *Manager) Spawned() int        { return m.spawned }
func (m *Manager) Destroyed() int      { return m.destroyed }
func (m *Manager) Config() Config      { return m.cfg }
