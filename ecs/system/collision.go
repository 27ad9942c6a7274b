package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/frostpurge/ecs"
	"github.com/milk9111/frostpurge/ecs/component"
	"github.com/milk9111/frostpurge/prefabs"
)

// ContactTuning holds every number the collision responses use.
type ContactTuning struct {
	HitDamage   int
	Repulsion   float64
	CueCooldown float64
	FliesSlow   float64
	FliesDamage int
	BounceScale float64
	BreakSpeed  float64
	StaggerTime float64

	MasterVolume  float64
	HitVolume     float64
	CollideVolume float64
	BreakVolume   float64
	BounceVolume  float64
}

func DefaultContactTuning() ContactTuning {
	return ContactTuning{
		HitDamage:     15,
		Repulsion:     50,
		CueCooldown:   0.5,
		FliesSlow:     0.25,
		FliesDamage:   1,
		BounceScale:   4,
		BreakSpeed:    105,
		StaggerTime:   0.25,
		MasterVolume:  1,
		HitVolume:     2,
		CollideVolume: 1.5,
		BreakVolume:   1.5,
		BounceVolume:  1,
	}
}

// ContactTuningFromSpec overlays the non-zero values of spec on the defaults.
func ContactTuningFromSpec(spec prefabs.ContactSpec, masterVolume float64) ContactTuning {
	t := DefaultContactTuning()
	if spec.HitDamage > 0 {
		t.HitDamage = spec.HitDamage
	}
	if spec.Repulsion > 0 {
		t.Repulsion = spec.Repulsion
	}
	if spec.CueCooldown > 0 {
		t.CueCooldown = spec.CueCooldown
	}
	if spec.FliesSlow > 0 {
		t.FliesSlow = spec.FliesSlow
	}
	if spec.FliesDamage > 0 {
		t.FliesDamage = spec.FliesDamage
	}
	if spec.BounceScale > 0 {
		t.BounceScale = spec.BounceScale
	}
	if spec.BreakSpeed > 0 {
		t.BreakSpeed = spec.BreakSpeed
	}
	if spec.StaggerTime > 0 {
		t.StaggerTime = spec.StaggerTime
	}
	if spec.Volumes.Hit > 0 {
		t.HitVolume = spec.Volumes.Hit
	}
	if spec.Volumes.Collide > 0 {
		t.CollideVolume = spec.Volumes.Collide
	}
	if spec.Volumes.Break > 0 {
		t.BreakVolume = spec.Volumes.Break
	}
	if spec.Volumes.Bounce > 0 {
		t.BounceVolume = spec.Volumes.Bounce
	}
	if masterVolume >= 0 {
		t.MasterVolume = masterVolume
	}
	return t
}

type contactSide struct {
	Participant
	Body ContactBody
}

// contactHandler receives its sides ordered by Kind.
type contactHandler func(d *CollisionDispatcher, w *ecs.World, a, b contactSide, c *Contact)

// CollisionDispatcher turns contact-begin events into gameplay effects. It
// owns the shared cue cooldown: any gated cue that fires resets it for all
// gated cues.
type CollisionDispatcher struct {
	tuning   ContactTuning
	elapsed  float64
	handlers [kindCount][kindCount]contactHandler
}

func NewCollisionDispatcher(tuning ContactTuning) *CollisionDispatcher {
	d := &CollisionDispatcher{tuning: tuning}
	d.register(KindPlayer, KindEnemy, handlePlayerEnemy)
	d.register(KindPlayer, KindObstacle, handlePlayerObstacle)
	d.register(KindPlayer, KindSwamp, handleReserved)
	d.register(KindPlayer, KindGoal, handlePlayerGoal)
	d.register(KindPlayer, KindBouncy, handlePlayerBouncy)
	d.register(KindPlayer, KindBreakable, handlePlayerBreakable)
	d.register(KindEnemy, KindEnemy, handleReserved)
	d.register(KindEnemy, KindObstacle, handleReserved)
	d.register(KindEnemy, KindBouncy, handleEnemyBouncy)
	return d
}

func (d *CollisionDispatcher) register(a, b Kind, h contactHandler) {
	if b < a {
		a, b = b, a
	}
	d.handlers[a][b] = h
}

func (d *CollisionDispatcher) Tuning() ContactTuning {
	return d.tuning
}

// SetTuning swaps tuning without touching the cue cooldown.
func (d *CollisionDispatcher) SetTuning(t ContactTuning) {
	d.tuning = t
}

// Advance moves the shared cue cooldown forward by dt seconds.
func (d *CollisionDispatcher) Advance(dt float64) {
	if dt > 0 {
		d.elapsed += dt
	}
}

func (d *CollisionDispatcher) Elapsed() float64 {
	return d.elapsed
}

// BeginContact classifies both sides and runs the handler for their unordered
// kind pair. It returns false when the contact was suppressed, which is what
// the physics engine's begin callback expects.
func (d *CollisionDispatcher) BeginContact(w *ecs.World, a, b ContactBody, c *Contact) bool {
	if c == nil {
		c = NewContact()
	}
	defer c.close()

	pa, okA := Classify(w, a.UserData)
	pb, okB := Classify(w, b.UserData)
	if !okA || !okB {
		return true
	}
	sa := contactSide{Participant: pa, Body: a}
	sb := contactSide{Participant: pb, Body: b}
	if sb.Kind < sa.Kind {
		sa, sb = sb, sa
	}
	if h := d.handlers[sa.Kind][sb.Kind]; h != nil {
		h(d, w, sa, sb, c)
	}
	return !c.Suppressed()
}

func (d *CollisionDispatcher) cue(w *ecs.World, cue component.Cue, scale float64) {
	qe, ok := ecs.First(w, component.CueQueueComponent.Kind())
	if !ok {
		return
	}
	q, _ := ecs.Get(w, qe, component.CueQueueComponent.Kind())
	q.Push(cue, d.tuning.MasterVolume*scale)
}

func (d *CollisionDispatcher) gatedCue(w *ecs.World, cue component.Cue, scale float64) bool {
	if d.elapsed <= d.tuning.CueCooldown {
		return false
	}
	d.cue(w, cue, scale)
	d.elapsed = 0
	return true
}

// handleReserved covers pairs that are routed but intentionally do nothing
// yet: player in swamp, enemy against enemy, enemy against obstacle.
func handleReserved(*CollisionDispatcher, *ecs.World, contactSide, contactSide, *Contact) {}

func handlePlayerEnemy(d *CollisionDispatcher, w *ecs.World, pl, en contactSide, c *Contact) {
	player, ok := ecs.Get(w, pl.Entity, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	if player.GameOver || ecs.Has(w, pl.Entity, component.InvulnerableComponent.Kind()) {
		c.Suppress()
		return
	}
	enemy, _ := ecs.Get(w, en.Entity, component.EnemyComponent.Kind())
	playerBody := bodyOf(w, pl.Entity)

	if enemy != nil && enemy.Flies() {
		if playerBody != nil {
			playerBody.SetVelocityVector(playerBody.Velocity().Mult(d.tuning.FliesSlow))
		}
		damage(w, pl.Entity, d.tuning.FliesDamage)
		return
	}

	damage(w, pl.Entity, d.tuning.HitDamage)
	startShake(player)

	enemyBody := bodyOf(w, en.Entity)
	if playerBody != nil && enemyBody != nil {
		dir := playerBody.Position().Sub(enemyBody.Position()).Normalize()
		playerBody.ApplyImpulseAtWorldPoint(dir.Mult(d.tuning.Repulsion), playerBody.Position())
		enemyBody.ApplyImpulseAtWorldPoint(dir.Mult(-d.tuning.Repulsion), enemyBody.Position())
		if d.tuning.StaggerTime > 0 {
			if err := ecs.Add(w, en.Entity, component.StaggerComponent.Kind(), &component.Stagger{Remaining: d.tuning.StaggerTime}); err != nil {
				log.Printf("Collision: stagger enemy: %v", err)
			}
		}
	}

	d.gatedCue(w, component.CueHit, d.tuning.HitVolume)

	// Remaining == 0 would mean indefinite, so no window at all when unset.
	if player.InvincibleTime > 0 {
		if err := ecs.Add(w, pl.Entity, component.InvulnerableComponent.Kind(), &component.Invulnerable{Remaining: player.InvincibleTime}); err != nil {
			log.Printf("Collision: start invulnerability: %v", err)
		}
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventPlayerHit, Entity: pl.Entity, Other: en.Entity})
}

func handlePlayerObstacle(d *CollisionDispatcher, w *ecs.World, _, _ contactSide, _ *Contact) {
	d.gatedCue(w, component.CueCollide, d.tuning.CollideVolume)
}

func handlePlayerGoal(d *CollisionDispatcher, w *ecs.World, pl, goal contactSide, _ *Contact) {
	if !goal.Body.Sensor {
		return
	}
	player, ok := ecs.Get(w, pl.Entity, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	goal.Tile.Activate()
	player.Win = true
	w.Events().Push(ecs.Event{Kind: ecs.EventGoalReached, Entity: pl.Entity, Other: goal.Entity})
}

func handlePlayerBouncy(d *CollisionDispatcher, w *ecs.World, pl, tile contactSide, c *Contact) {
	body := bodyOf(w, pl.Entity)
	if body != nil {
		at := body.Position()
		if pts := c.Points(); len(pts) > 0 {
			at = pts[0]
		}
		sx, sy := tile.Tile.BounceSigns(at.X, at.Y)
		v := body.Velocity()
		scale := d.tuning.BounceScale
		body.SetVelocity(v.X*scale*sx, v.Y*scale*sy)
	}
	d.cue(w, component.CueBounce, d.tuning.BounceVolume)
	tile.Tile.Activate()
	w.Events().Push(ecs.Event{Kind: ecs.EventPlayerBounce, Entity: pl.Entity, Other: tile.Entity})
}

func handlePlayerBreakable(d *CollisionDispatcher, w *ecs.World, pl, tile contactSide, c *Contact) {
	body := bodyOf(w, pl.Entity)
	if body == nil || body.Velocity().Length() <= d.tuning.BreakSpeed {
		d.gatedCue(w, component.CueCollide, d.tuning.CollideVolume)
		return
	}
	c.Suppress()
	tile.Tile.Deactivate()
	if player, ok := ecs.Get(w, pl.Entity, component.PlayerComponent.Kind()); ok {
		startShake(player)
	}
	d.cue(w, component.CueBreak, d.tuning.BreakVolume)
	w.Events().Push(ecs.Event{Kind: ecs.EventTileBroken, Entity: tile.Entity, Other: pl.Entity})
}

// handleEnemyBouncy only pulses the tile; enemies are not launched.
func handleEnemyBouncy(_ *CollisionDispatcher, _ *ecs.World, _, tile contactSide, _ *Contact) {
	tile.Tile.Activate()
}

func bodyOf(w *ecs.World, e ecs.Entity) *cp.Body {
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil
	}
	return pb.Body
}

func damage(w *ecs.World, e ecs.Entity, amount int) {
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.Current -= amount
	}
}

func startShake(p *component.Player) {
	p.Shake = true
	p.ShakeRemaining = p.ShakeTime
}
