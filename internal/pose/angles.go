package pose

import "math"

// Joint angle names produced by AllAngles.
const (
	LeftElbowAngle     = "Left Elbow Angle"
	RightElbowAngle    = "Right Elbow Angle"
	LeftShoulderAngle  = "Left Shoulder Angle"
	RightShoulderAngle = "Right Shoulder Angle"
	LeftHipAngle       = "Left Hip Angle"
	RightHipAngle      = "Right Hip Angle"
	LeftKneeAngle      = "Left Knee Angle"
	RightKneeAngle     = "Right Knee Angle"
	LeftAnkleAngle     = "Left Ankle Angle"
	RightAnkleAngle    = "Right Ankle Angle"
	LeftTorsoAngle     = "Left Torso Angle"
	RightTorsoAngle    = "Right Torso Angle"
)

// AngleDefinition names the landmark triple an angle is measured on.
// The angle is taken at Vertex.
type AngleDefinition struct {
	Name   string
	A      int
	Vertex int
	B      int
}

// AngleDefinitions is the fixed set of angles computed for every frame.
var AngleDefinitions = []AngleDefinition{
	{LeftElbowAngle, LeftShoulder, LeftElbow, LeftWrist},
	{RightElbowAngle, RightShoulder, RightElbow, RightWrist},
	{LeftShoulderAngle, LeftElbow, LeftShoulder, LeftHip},
	{RightShoulderAngle, RightElbow, RightShoulder, RightHip},
	{LeftHipAngle, LeftShoulder, LeftHip, LeftKnee},
	{RightHipAngle, RightShoulder, RightHip, RightKnee},
	{LeftKneeAngle, LeftHip, LeftKnee, LeftAnkle},
	{RightKneeAngle, RightHip, RightKnee, RightAnkle},
	{LeftAnkleAngle, LeftKnee, LeftAnkle, LeftFootIndex},
	{RightAnkleAngle, RightKnee, RightAnkle, RightFootIndex},
	{LeftTorsoAngle, LeftShoulder, LeftHip, LeftAnkle},
	{RightTorsoAngle, RightShoulder, RightHip, RightAnkle},
}

// Angles maps an angle name to degrees. NaN marks an indeterminate angle.
type Angles map[string]float64

// Value reports the named angle and whether it is present and finite.
func (a Angles) Value(name string) (float64, bool) {
	v, ok := a[name]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return v, false
	}
	return v, true
}

// AngleBetween returns the angle at p2, in degrees, formed by the rays to p1 and p3.
// It returns NaN when either ray has zero length.
func AngleBetween(p1, p2, p3 Landmark) float64 {
	ax, ay, az := p1.X-p2.X, p1.Y-p2.Y, p1.Z-p2.Z
	bx, by, bz := p3.X-p2.X, p3.Y-p2.Y, p3.Z-p2.Z

	magA := math.Sqrt(ax*ax + ay*ay + az*az)
	magB := math.Sqrt(bx*bx + by*by + bz*bz)
	if magA == 0 || magB == 0 {
		return math.NaN()
	}

	cos := (ax*bx + ay*by + az*bz) / (magA * magB)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// AllAngles computes every angle in AngleDefinitions.
// It returns an empty map when the frame has fewer than NumLandmarks points.
func AllAngles(landmarks []Landmark) Angles {
	angles := make(Angles, len(AngleDefinitions))
	if len(landmarks) < NumLandmarks {
		return angles
	}

	for _, def := range AngleDefinitions {
		angles[def.Name] = AngleBetween(landmarks[def.A], landmarks[def.Vertex], landmarks[def.B])
	}
	return angles
}
