// Package pose holds the body landmark schema and the joint angle geometry built on it.
package pose

import "strings"

// Body landmark indices following the 33-point BlazePose layout.
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Landmark is a normalized point in camera-frame coordinates.
// Visibility is nil when the model did not report a confidence score.
type Landmark struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          float64  `json:"z"`
	Visibility *float64 `json:"visibility,omitempty"`
}

// VisibilityScore returns the reported visibility, or 1 when none was reported.
func (l Landmark) VisibilityScore() float64 {
	if l.Visibility == nil {
		return 1
	}
	return *l.Visibility
}

// LandmarkNames maps every landmark index to its canonical name.
var LandmarkNames = [NumLandmarks]string{
	Nose:           "nose",
	LeftEyeInner:   "left_eye_inner",
	LeftEye:        "left_eye",
	LeftEyeOuter:   "left_eye_outer",
	RightEyeInner:  "right_eye_inner",
	RightEye:       "right_eye",
	RightEyeOuter:  "right_eye_outer",
	LeftEar:        "left_ear",
	RightEar:       "right_ear",
	MouthLeft:      "mouth_left",
	MouthRight:     "mouth_right",
	LeftShoulder:   "left_shoulder",
	RightShoulder:  "right_shoulder",
	LeftElbow:      "left_elbow",
	RightElbow:     "right_elbow",
	LeftWrist:      "left_wrist",
	RightWrist:     "right_wrist",
	LeftPinky:      "left_pinky",
	RightPinky:     "right_pinky",
	LeftIndex:      "left_index",
	RightIndex:     "right_index",
	LeftThumb:      "left_thumb",
	RightThumb:     "right_thumb",
	LeftHip:        "left_hip",
	RightHip:       "right_hip",
	LeftKnee:       "left_knee",
	RightKnee:      "right_knee",
	LeftAnkle:      "left_ankle",
	RightAnkle:     "right_ankle",
	LeftHeel:       "left_heel",
	RightHeel:      "right_heel",
	LeftFootIndex:  "left_foot_index",
	RightFootIndex: "right_foot_index",
}

var landmarkIndexByName = func() map[string]int {
	m := make(map[string]int, NumLandmarks)
	for i, name := range LandmarkNames {
		m[name] = i
	}
	return m
}()

// LandmarkIndex resolves a landmark name (case insensitive) to its index.
func LandmarkIndex(name string) (int, bool) {
	idx, ok := landmarkIndexByName[strings.ToLower(strings.TrimSpace(name))]
	return idx, ok
}

// LandmarkName returns the canonical name of an index, or "" when out of range.
func LandmarkName(idx int) string {
	if idx < 0 || idx >= NumLandmarks {
		return ""
	}
	return LandmarkNames[idx]
}
