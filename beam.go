package beamfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Acceleration ranges differ between the first spawn and respawns after a
// beam has reached the center. The asymmetry is a tuned visual constant.
const (
	accelMin        = 0.05
	accelMaxSpawn   = 0.3
	accelMaxRespawn = 0.2

	scaleMin = 0.1
	scaleMax = 0.5

	// Squared distance from the center below which a vertex counts as
	// arrived. Tuned, do not generalize.
	arriveDistSq = 0.1
)

// Beam is one animated sliver triangle converging on the center.
// Direction points outward from the center through Origin; the beam
// travels against it. Extent gives the triangle its lateral width and is
// an independent random unit vector, not necessarily orthogonal to
// Direction. Direction and Extent keep their magnitude for the beam's
// whole lifetime between pool resets.
type Beam struct {
	Speed        float32
	Acceleration float32
	Origin       mgl32.Vec3
	Direction    mgl32.Vec3
	Extent       mgl32.Vec3
}

// BeamPool owns a fixed set of beams and the flat triangle buffers derived
// from them: three vertices, three normals and three indices per beam,
// packed at [3i, 3i+1, 3i+2]. Vertex 0 of a triple is the beam's tail,
// 1 and 2 the two tip points offset by the lateral extent. Triangles never
// share vertices, so Indices is the identity sequence.
//
// Vertices are rewritten in place every Step; Normals and Indices only
// change on a wholesale Reset. The pool is not safe for concurrent use:
// the host must finish Step before handing the buffers to a reader.
type BeamPool struct {
	Beams    []Beam
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Indices  []uint32

	radius float32
	width  float32
	src    RandomSource
}

// NewBeamPool builds a pool of count beams spawning on a sphere of the
// given radius. All random draws go through src. The returned buffers are
// immediately renderable. count must be positive, validated by the caller.
func NewBeamPool(count int, radius, width float32, src RandomSource) *BeamPool {
	pool := &BeamPool{
		radius: radius,
		width:  width,
		src:    src,
	}
	pool.Reset(count)
	return pool
}

// Reset reallocates and reinitializes the whole pool. Called once from
// NewBeamPool and again whenever the configured beam count changes; the
// pool is rebuilt wholesale rather than patched slot by slot.
func (pool *BeamPool) Reset(count int) {
	pool.Beams = make([]Beam, count)
	pool.Vertices = make([]mgl32.Vec3, 3*count)
	pool.Normals = make([]mgl32.Vec3, 3*count)
	pool.Indices = make([]uint32, 3*count)

	for i := range pool.Beams {
		dir := pool.src.UnitVec3()
		ext := pool.src.UnitVec3()

		pool.Beams[i] = Beam{
			Speed:        0,
			Acceleration: pool.src.Range(accelMin, accelMaxSpawn),
			Origin:       dir.Mul(pool.radius),
			Direction:    dir,
			Extent:       ext,
		}

		base := 3 * i
		n := dir.Cross(ext).Normalize()
		// Blended tail normal softens the trailing end; the tips share
		// the flat face normal.
		pool.Normals[base] = lerpVec3(dir, n, 0.5).Normalize()
		pool.Normals[base+1] = n
		pool.Normals[base+2] = n

		pool.Indices[base] = uint32(base)
		pool.Indices[base+1] = uint32(base + 1)
		pool.Indices[base+2] = uint32(base + 2)

		pool.spawnGeometry(i)
	}
}

// spawnGeometry rewrites beam i's vertex triple anchored at its origin,
// with a freshly drawn scale. Used at construction and on respawn.
func (pool *BeamPool) spawnGeometry(i int) {
	beam := &pool.Beams[i]

	scale := pool.src.Range(scaleMin, scaleMax)
	tip := beam.Direction.Mul(scale)
	lateral := beam.Extent.Mul(pool.width * scale)

	base := 3 * i
	pool.Vertices[base] = beam.Origin
	pool.Vertices[base+1] = beam.Origin.Add(tip).Sub(lateral)
	pool.Vertices[base+2] = beam.Origin.Add(tip).Add(lateral)
}

// Count returns the number of beams in the pool.
func (pool *BeamPool) Count() int {
	return len(pool.Beams)
}

// SetShape updates the spawn sphere radius and lateral width. Width takes
// effect on the next respawn, radius on the next Reset.
func (pool *BeamPool) SetShape(radius, width float32) {
	pool.radius = radius
	pool.width = width
}

// Step advances every beam by one tick: integrate speed, move the vertex
// triple toward the center, respawn beams whose triple has fully arrived.
//
// The arrival test is per vertex; a triple's vertices start at different
// distances from the center, so they can cross the threshold on different
// ticks. A vertex inside the threshold stops moving but the beam only
// respawns once all three are inside, smearing the reset over a few ticks
// instead of snapping. Speed is unbounded until the reset.
func (pool *BeamPool) Step(dt, timeScale float32) {
	for i := range pool.Beams {
		beam := &pool.Beams[i]
		beam.Speed += beam.Acceleration * dt * timeScale

		delta := beam.Direction.Mul(-beam.Speed)
		base := 3 * i

		arrived := 0
		for v := base; v < base+3; v++ {
			if pool.Vertices[v].LenSqr() >= arriveDistSq {
				pool.Vertices[v] = pool.Vertices[v].Add(delta)
			} else {
				arrived++
			}
		}

		if arrived == 3 {
			// Direction and extent survive the respawn; only the
			// origin-relative geometry and kinematics reset. Normals
			// stay untouched for the lifetime of the pool.
			pool.spawnGeometry(i)
			beam.Speed = 0
			beam.Acceleration = pool.src.Range(accelMin, accelMaxRespawn)
		}
	}
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
