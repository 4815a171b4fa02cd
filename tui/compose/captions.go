package compose

import "math/rand"

// cannedCaptions backs the caption generator. Picking one at random is
// the whole "AI".
var cannedCaptions = []string{
	"When you realize it's Monday tomorrow...",
	"Me trying to adult like...",
	"When you see your crush but act cool.",
	"POV: You're the last slice of pizza.",
	"When you hear your favorite song come on.",
	"Me pretending to understand the conversation.",
	"When you finally get the Wi-Fi password.",
	"When you realize you left the oven on.",
	"When you try to sneak snacks into the movie theater.",
	"When you see your ex with someone else.",
}

func randomCaption() string {
	return cannedCaptions[rand.Intn(len(cannedCaptions))]
}
