// Package insight — prompts.go holds the prompt templates. Keep them
// here, not scattered through the services, so the voice stays in one
// place.
package insight

import (
	"fmt"
	"strings"
)

// systemPersona sets the reader's voice on every call.
const systemPersona = "You are Arcana, a warm, grounded tarot reader. " +
	"You speak plainly, in second person, two short paragraphs at most. " +
	"You never predict specific events, give medical, legal or financial advice, " +
	"or mention that you are an AI."

// buildCardPrompt templates the daily-card interpretation request.
func buildCardPrompt(card, orientation, meaning string) string {
	return fmt.Sprintf(
		"Today's card is %s, drawn %s. Its traditional meaning: %s.\n"+
			"Write today's reading for the seeker. Ground it in the card's meaning, "+
			"keep it under 120 words, no headings, no lists.",
		card, orientation, meaning,
	)
}

// palmFeaturesPrompt is stage one of the palm reading: the model
// describes the visible lines as strict JSON, nothing else. The fenced
// block keeps extraction simple and non-brittle.
const palmFeaturesPrompt = "Look at this palm photo and describe what you see in the " +
	"major lines. Respond with ONLY a JSON object inside a ```json fence, with exactly " +
	"these string fields:\n" +
	"{\"life_line\": ..., \"head_line\": ..., \"heart_line\": ..., " +
	"\"fate_line\": ..., \"overall_impression\": ...}\n" +
	"One short descriptive sentence per field. If a line is not clearly visible, " +
	"say so in its field. No text outside the fence."

// buildPalmNarrativePrompt is stage two: turn the extracted features
// into the reading the seeker sees.
func buildPalmNarrativePrompt(f PalmFeatures) string {
	var sb strings.Builder
	sb.WriteString("You examined a seeker's palm and noted:\n")
	sb.WriteString(fmt.Sprintf("- life line: %s\n", f.LifeLine))
	sb.WriteString(fmt.Sprintf("- head line: %s\n", f.HeadLine))
	sb.WriteString(fmt.Sprintf("- heart line: %s\n", f.HeartLine))
	sb.WriteString(fmt.Sprintf("- fate line: %s\n", f.FateLine))
	sb.WriteString(fmt.Sprintf("- overall: %s\n", f.OverallImpression))
	sb.WriteString("Write the palm reading for the seeker based on these observations. " +
		"Under 150 words, no headings, no lists.")
	return sb.String()
}
