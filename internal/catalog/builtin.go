package catalog

import "github.com/misterclayt0n/formcoach/internal/pose"

func both(left, right string, r Range) map[string]Range {
	return map[string]Range{left: r, right: r}
}

// fourPhaseCycle wires the start -> descent -> peak -> return topology shared by most lifts.
func fourPhaseCycle(begin, peak, abort, rise string) []Transition {
	return []Transition{
		{From: 0, To: 1, Effect: EffectBeginRep, Message: begin},
		{From: 1, To: 2, Effect: EffectPeak, Message: peak},
		{From: 1, To: 0, Effect: EffectAbortRep, Message: abort},
		{From: 2, To: 3, Message: rise},
		{From: 3, To: 2, Effect: EffectPeak, Message: peak},
		{From: 3, To: 0, Effect: EffectCompleteRep},
	}
}

func builtin() []*Exercise {
	return []*Exercise{
		{
			ID:          "squat",
			Name:        "Squat",
			Description: "Bodyweight squat. Lower until the knees pass 120 degrees and stand back up.",
			BodyPart:    "legs",
			CameraView:  "side",
			MET:         5.0,
			Phases: []Phase{
				{
					Name:     "Starting Position",
					Targets:  both(pose.LeftKneeAngle, pose.RightKneeAngle, Range{160, 180}),
					Feedback: "Stand tall with your feet shoulder-width apart.",
				},
				{
					Name:     "Lowering",
					Targets:  both(pose.LeftKneeAngle, pose.RightKneeAngle, Range{120, 160}),
					Feedback: "Keep your chest up and push your hips back.",
				},
				{
					Name:     "Bottom",
					Targets:  both(pose.LeftKneeAngle, pose.RightKneeAngle, Range{0, 120}),
					Feedback: "Keep your knees tracking over your toes.",
				},
				{
					Name:     "Ascending",
					Targets:  both(pose.LeftKneeAngle, pose.RightKneeAngle, Range{120, 160}),
					Feedback: "Drive up through your heels.",
				},
			},
			Transitions: fourPhaseCycle(
				"Lowering into the squat.",
				"Reached bottom position.",
				"Squat too shallow, go lower next time.",
				"Pushing back up.",
			),
			RequiredLandmarks: []string{"left_hip", "right_hip", "left_knee", "right_knee", "left_ankle", "right_ankle"},
		},
		{
			ID:          "pushup",
			Name:        "Push-up",
			Description: "Standard push-up with a straight body line.",
			BodyPart:    "chest",
			CameraView:  "side",
			MET:         8.0,
			Phases: []Phase{
				{
					Name:     "Plank",
					Targets:  pushupTargets(Range{150, 180}),
					Feedback: "Hold a straight line from shoulders to ankles.",
				},
				{
					Name:     "Lowering",
					Targets:  pushupTargets(Range{90, 150}),
					Feedback: "Lower with control, elbows at 45 degrees.",
				},
				{
					Name:     "Bottom",
					Targets:  pushupTargets(Range{0, 90}),
					Feedback: "Chest close to the floor.",
				},
				{
					Name:     "Pushing Up",
					Targets:  pushupTargets(Range{90, 150}),
					Feedback: "Push the floor away.",
				},
			},
			Transitions: fourPhaseCycle(
				"Lowering into the push-up.",
				"Reached bottom position.",
				"Go lower, bring your chest to the floor.",
				"Pushing back up.",
			),
			RequiredLandmarks: []string{"left_shoulder", "left_elbow", "left_wrist", "left_hip", "left_ankle"},
			HighPrecision:     true,
		},
		{
			ID:          "lunge",
			Name:        "Lunge",
			Description: "Forward lunge, both knees close to 90 degrees at the bottom.",
			BodyPart:    "legs",
			CameraView:  "side",
			MET:         4.0,
			Phases: []Phase{
				{
					Name:     "Standing",
					Targets:  both(pose.LeftKneeAngle, pose.RightKneeAngle, Range{160, 180}),
					Feedback: "Stand upright, core braced.",
				},
				{
					Name:     "Stepping Down",
					Targets:  both(pose.LeftKneeAngle, pose.RightKneeAngle, Range{100, 160}),
					Feedback: "Keep your torso upright as you lower.",
				},
				{
					Name:     "Lunge Bottom",
					Targets:  both(pose.LeftKneeAngle, pose.RightKneeAngle, Range{0, 100}),
					Feedback: "Front knee stays behind your toes.",
				},
				{
					Name:     "Rising",
					Targets:  both(pose.LeftKneeAngle, pose.RightKneeAngle, Range{100, 160}),
					Feedback: "Push through the front heel.",
				},
			},
			Transitions: fourPhaseCycle(
				"Lowering into the lunge.",
				"Reached bottom position.",
				"Lunge too shallow, bend both knees more.",
				"Rising back up.",
			),
			RequiredLandmarks: []string{"left_hip", "right_hip", "left_knee", "right_knee", "left_ankle", "right_ankle"},
		},
		{
			ID:          "bicep-curl",
			Name:        "Bicep Curl",
			Description: "Single-arm curl on the left side with the upper arm pinned to the torso.",
			BodyPart:    "arms",
			CameraView:  "side",
			MET:         3.5,
			Phases: []Phase{
				{
					Name:     "Arm Extended",
					Targets:  curlTargets(Range{150, 180}),
					Feedback: "Start with the arm fully extended.",
				},
				{
					Name:     "Curling",
					Targets:  curlTargets(Range{60, 150}),
					Feedback: "Keep your elbow close to your body.",
				},
				{
					Name:     "Top of Curl",
					Targets:  curlTargets(Range{0, 60}),
					Feedback: "Squeeze at the top.",
				},
				{
					Name:     "Lowering",
					Targets:  curlTargets(Range{60, 150}),
					Feedback: "Lower slowly.",
				},
			},
			Transitions: fourPhaseCycle(
				"Curling up.",
				"Reached top position.",
				"Curl all the way up.",
				"Lowering the weight.",
			),
			RequiredLandmarks: []string{"left_shoulder", "left_elbow", "left_wrist", "left_hip"},
		},
		{
			ID:          "shoulder-press",
			Name:        "Shoulder Press",
			Description: "Overhead press from shoulder height to full lockout.",
			BodyPart:    "shoulders",
			CameraView:  "front",
			MET:         4.0,
			Phases: []Phase{
				{
					Name:     "Rack Position",
					Targets:  both(pose.LeftElbowAngle, pose.RightElbowAngle, Range{0, 100}),
					Feedback: "Hands at shoulder height, elbows under the wrists.",
				},
				{
					Name:     "Pressing",
					Targets:  both(pose.LeftElbowAngle, pose.RightElbowAngle, Range{100, 160}),
					Feedback: "Press straight overhead.",
				},
				{
					Name:     "Lockout",
					Targets:  both(pose.LeftElbowAngle, pose.RightElbowAngle, Range{160, 180}),
					Feedback: "Lock your elbows overhead.",
				},
				{
					Name:     "Lowering",
					Targets:  both(pose.LeftElbowAngle, pose.RightElbowAngle, Range{100, 160}),
					Feedback: "Lower back to your shoulders with control.",
				},
			},
			Transitions: fourPhaseCycle(
				"Pressing up.",
				"Reached lockout.",
				"Press all the way to lockout.",
				"Lowering the weight.",
			),
			RequiredLandmarks: []string{"left_shoulder", "right_shoulder", "left_elbow", "right_elbow", "left_wrist", "right_wrist"},
		},
		{
			ID:          "hand-raise",
			Name:        "Hand Raise",
			Description: "Raise both arms overhead and lower them back down.",
			BodyPart:    "shoulders",
			CameraView:  "front",
			MET:         2.5,
			Phases: []Phase{
				{
					Name:     "Arms Down",
					Targets:  both(pose.LeftShoulderAngle, pose.RightShoulderAngle, Range{0, 45}),
					Feedback: "Arms relaxed at your sides.",
				},
				{
					Name:     "Arms Raised",
					Targets:  both(pose.LeftShoulderAngle, pose.RightShoulderAngle, Range{150, 180}),
					Feedback: "Reach as high as you can.",
				},
			},
			Transitions: []Transition{
				{From: 0, To: 1, Effect: EffectBeginRep, Message: "Arms raised."},
				{From: 1, To: 0, Effect: EffectCompleteRep},
			},
			RequiredLandmarks: []string{"left_shoulder", "right_shoulder", "left_elbow", "right_elbow", "left_hip", "right_hip"},
		},
		{
			ID:          "jumping-jack",
			Name:        "Jumping Jack",
			Description: "Jump the arms from the sides to overhead and back.",
			BodyPart:    "full body",
			CameraView:  "front",
			MET:         8.0,
			Phases: []Phase{
				{
					Name:     "Closed",
					Targets:  both(pose.LeftShoulderAngle, pose.RightShoulderAngle, Range{0, 45}),
					Feedback: "Feet together, arms down.",
				},
				{
					Name:     "Open",
					Targets:  both(pose.LeftShoulderAngle, pose.RightShoulderAngle, Range{130, 180}),
					Feedback: "Arms overhead, feet wide.",
				},
			},
			Transitions: []Transition{
				{From: 0, To: 1, Effect: EffectBeginRep, Message: "Jump out."},
				{From: 1, To: 0, Effect: EffectCompleteRep},
			},
			RequiredLandmarks: []string{"left_shoulder", "right_shoulder", "left_elbow", "right_elbow", "left_ankle", "right_ankle"},
		},
	}
}

func pushupTargets(elbow Range) map[string]Range {
	return map[string]Range{
		pose.LeftElbowAngle: elbow,
		pose.LeftTorsoAngle: {150, 180},
	}
}

func curlTargets(elbow Range) map[string]Range {
	return map[string]Range{
		pose.LeftElbowAngle:    elbow,
		pose.LeftShoulderAngle: {0, 35},
	}
}
