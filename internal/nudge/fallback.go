package nudge

import "math/rand"

// Static fallback messages used when the content provider is unavailable,
// keyed by how far into the session the user is.
var fallbackPools = map[string][]string{
	"gentle": {
		"Take a breath — you're right where you need to be.",
		"No rush. Just this one step.",
		"Stay with it. You're safe, you're focused.",
		"It's okay if it's not perfect — just keep going.",
		"Quiet progress is still progress.",
		"One small action now beats a big plan later.",
	},
	"playful": {
		"Still here? Good. I'm proud of you.",
		"You vs. task… and you're winning.",
		"High five in spirit — keep at it.",
		"Your brain might want to wander — let's reel it back.",
		"Tiny progress party — you just made some.",
		"You're more focused than 90% of the internet right now.",
	},
	"motivating": {
		"Future-you will thank you for sticking with it.",
		"This effort adds up. Keep pushing.",
		"You're doing the hard part right now — showing up.",
		"Stay sharp. Stay steady. You've got this.",
		"Energy flows where your focus goes.",
		"The finish line is closer than it feels.",
	},
	"mindful": {
		"Notice your breath. Notice your task. That's enough.",
		"Let go of what's next — just this moment.",
		"Distraction is natural. Coming back is the win.",
		"Your only job now is this one step.",
		"When mind wanders, guide it gently back here.",
	},
	"reward": {
		"You've already beaten the urge to quit once. Keep stacking wins.",
		"A few more minutes = another checkmark earned.",
		"This streak will look good in your recap later.",
		"Progress unlocked. Next level: keep going.",
	},
}

// FallbackBucket maps session progress (0..1) to a fallback pool name:
// gentle while settling in, playful through the middle stretch, motivating
// toward the end.
func FallbackBucket(progress float64) string {
	switch {
	case progress < 0.5:
		return "gentle"
	case progress < 0.75:
		return "playful"
	default:
		return "motivating"
	}
}

// Fallback returns a message for the given session progress, drawn
// uniformly at random from the matching pool.
func Fallback(progress float64) string {
	pool := fallbackPools[FallbackBucket(progress)]
	return pool[rand.Intn(len(pool))]
}

// FallbackFromPool draws from a named pool, falling back to the
// progress-keyed pool when the name is unknown.
func FallbackFromPool(name string, progress float64) string {
	pool, ok := fallbackPools[name]
	if !ok {
		return Fallback(progress)
	}
	return pool[rand.Intn(len(pool))]
}
