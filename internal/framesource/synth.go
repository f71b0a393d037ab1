package framesource

import (
	"math"

	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/pose"
)

// Joints are the angles, in degrees, a synthetic skeleton is posed with.
type Joints struct {
	LeftKnee      float64
	RightKnee     float64
	LeftElbow     float64
	RightElbow    float64
	LeftShoulder  float64
	RightShoulder float64
}

// Standing is a relaxed upright pose.
var Standing = Joints{
	LeftKnee:      175,
	RightKnee:     175,
	LeftElbow:     170,
	RightElbow:    170,
	LeftShoulder:  15,
	RightShoulder: 15,
}

const (
	limbLength      = 0.2
	armLength       = 0.15
	syntheticVis    = 0.99
	frameIntervalMs = 33
)

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Skeleton builds a full 33-landmark frame, facing the camera, posed with j.
// Shoulders sit straight above the hips so every posed angle is exact.
func Skeleton(j Joints) []pose.Landmark {
	lm := make([]pose.Landmark, pose.NumLandmarks)
	set := func(idx int, x, y float64) {
		vis := syntheticVis
		lm[idx] = pose.Landmark{X: x, Y: y, Visibility: &vis}
	}

	set(pose.Nose, 0.5, 0.15)
	set(pose.LeftEyeInner, 0.49, 0.14)
	set(pose.LeftEye, 0.485, 0.14)
	set(pose.LeftEyeOuter, 0.48, 0.14)
	set(pose.RightEyeInner, 0.51, 0.14)
	set(pose.RightEye, 0.515, 0.14)
	set(pose.RightEyeOuter, 0.52, 0.14)
	set(pose.LeftEar, 0.47, 0.15)
	set(pose.RightEar, 0.53, 0.15)
	set(pose.MouthLeft, 0.49, 0.17)
	set(pose.MouthRight, 0.51, 0.17)

	// Image y grows downwards; side is -1 for the subject's left (image left), +1 for the right.
	for _, side := range []struct {
		sign                                     float64
		shoulder, elbow, wrist, pinky, index     int
		thumb, hip, knee, ankle, heel, footIndex int
		shoulderAngle, elbowAngle, kneeAngle     float64
	}{
		{-1, pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist, pose.LeftPinky, pose.LeftIndex,
			pose.LeftThumb, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle, pose.LeftHeel, pose.LeftFootIndex,
			j.LeftShoulder, j.LeftElbow, j.LeftKnee},
		{1, pose.RightShoulder, pose.RightElbow, pose.RightWrist, pose.RightPinky, pose.RightIndex,
			pose.RightThumb, pose.RightHip, pose.RightKnee, pose.RightAnkle, pose.RightHeel, pose.RightFootIndex,
			j.RightShoulder, j.RightElbow, j.RightKnee},
	} {
		sx, sy := 0.5+side.sign*0.06, 0.3
		hx, hy := sx, 0.55
		set(side.shoulder, sx, sy)
		set(side.hip, hx, hy)

		// Upper arm swings outwards from straight down (0) to straight up (180).
		a := rad(side.shoulderAngle)
		ex, ey := sx+side.sign*armLength*math.Sin(a), sy+armLength*math.Cos(a)
		set(side.elbow, ex, ey)

		// Forearm: rotate the elbow->shoulder direction by the elbow angle.
		dx, dy := (sx-ex)/armLength, (sy-ey)/armLength
		b := rad(side.elbowAngle) * side.sign
		wx := ex + armLength*(dx*math.Cos(b)-dy*math.Sin(b))
		wy := ey + armLength*(dx*math.Sin(b)+dy*math.Cos(b))
		set(side.wrist, wx, wy)
		set(side.pinky, wx+side.sign*0.01, wy+0.02)
		set(side.index, wx, wy+0.025)
		set(side.thumb, wx-side.sign*0.01, wy+0.015)

		kx, ky := hx, hy+limbLength
		set(side.knee, kx, ky)

		k := rad(side.kneeAngle)
		ax, ay := kx+side.sign*limbLength*math.Sin(k), ky-limbLength*math.Cos(k)
		set(side.ankle, ax, ay)
		set(side.heel, ax, ay+0.02)
		set(side.footIndex, ax+side.sign*0.04, ay+0.03)
	}

	return lm
}

// apply sets the joint driven by an angle name. Angles a synthetic skeleton cannot
// pose directly are ignored.
func (j *Joints) apply(name string, deg float64) {
	switch name {
	case pose.LeftKneeAngle:
		j.LeftKnee = deg
	case pose.RightKneeAngle:
		j.RightKnee = deg
	case pose.LeftElbowAngle:
		j.LeftElbow = deg
	case pose.RightElbowAngle:
		j.RightElbow = deg
	case pose.LeftShoulderAngle:
		j.LeftShoulder = deg
	case pose.RightShoulderAngle:
		j.RightShoulder = deg
	}
}

func lerp(a, b Joints, t float64) Joints {
	mix := func(x, y float64) float64 { return x + (y-x)*t }
	return Joints{
		LeftKnee:      mix(a.LeftKnee, b.LeftKnee),
		RightKnee:     mix(a.RightKnee, b.RightKnee),
		LeftElbow:     mix(a.LeftElbow, b.LeftElbow),
		RightElbow:    mix(a.RightElbow, b.RightElbow),
		LeftShoulder:  mix(a.LeftShoulder, b.LeftShoulder),
		RightShoulder: mix(a.RightShoulder, b.RightShoulder),
	}
}

// Script describes a synthetic workout recording.
type Script struct {
	Reps        int
	HoldFrames  int
	MoveFrames  int
	StartMillis int64
}

func DefaultScript(reps int) Script {
	return Script{Reps: reps, HoldFrames: 20, MoveFrames: 10}
}

// Synthesize produces a recording that walks the exercise's phases in order, posing
// every target angle at the middle of its range, once per rep.
func Synthesize(ex *catalog.Exercise, sc Script) []Frame {
	keys := make([]Joints, len(ex.Phases))
	for i, p := range ex.Phases {
		j := Standing
		for name, r := range p.Targets {
			j.apply(name, (r.Min+r.Max)/2)
		}
		keys[i] = j
	}
	if len(keys) == 0 {
		keys = []Joints{Standing}
	}

	var frames []Frame
	ts := sc.StartMillis
	emit := func(j Joints) {
		frames = append(frames, Frame{TimestampMillis: ts, Landmarks: Skeleton(j)})
		ts += frameIntervalMs
	}
	hold := func(j Joints) {
		for i := 0; i < sc.HoldFrames; i++ {
			emit(j)
		}
	}
	move := func(from, to Joints) {
		for i := 1; i <= sc.MoveFrames; i++ {
			emit(lerp(from, to, float64(i)/float64(sc.MoveFrames)))
		}
	}

	cur := keys[0]
	hold(cur)
	for rep := 0; rep < sc.Reps; rep++ {
		for i := 1; i <= len(keys); i++ {
			next := keys[i%len(keys)]
			move(cur, next)
			hold(next)
			cur = next
		}
	}
	return frames
}
