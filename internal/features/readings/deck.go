// Package readings — deck.go holds the major arcana and the daily draw.
//
// The draw is deterministic per (user, day): the cards do not change
// their mind if you ask twice. That also makes the drawn card
// reproducible in tests and across a retried transaction.
package readings

import (
	"hash/fnv"

	"github.com/noctua-labs/arcana-bot/internal/features/journey"
)

// Card is one major arcana card.
type Card struct {
	Name     string
	Upright  string // keyword meaning, upright
	Reversed string // keyword meaning, reversed
}

// Orientations of a drawn card.
const (
	OrientationUpright  = "upright"
	OrientationReversed = "reversed"
)

// MajorArcana — the 22 trumps in traditional order.
var MajorArcana = []Card{
	{"The Fool", "new beginnings, spontaneity, a leap of faith", "recklessness, hesitation, a false start"},
	{"The Magician", "willpower, skill, making things happen", "manipulation, untapped talent"},
	{"The High Priestess", "intuition, inner knowledge, stillness", "secrets withheld, a silenced inner voice"},
	{"The Empress", "abundance, nurture, creativity", "dependence, creative block"},
	{"The Emperor", "structure, authority, stability", "rigidity, domination, lost control"},
	{"The Hierophant", "tradition, guidance, shared belief", "rebellion, dogma questioned"},
	{"The Lovers", "union, alignment, a heartfelt choice", "disharmony, a choice avoided"},
	{"The Chariot", "determination, momentum, victory through will", "scattered force, lost direction"},
	{"Strength", "quiet courage, patience, compassion", "self-doubt, raw emotion unmastered"},
	{"The Hermit", "introspection, solitude, inner search", "isolation, withdrawal taken too far"},
	{"Wheel of Fortune", "cycles, turning points, luck in motion", "resistance to change, a stalled cycle"},
	{"Justice", "fairness, truth, cause and effect", "imbalance, an unfair account"},
	{"The Hanged Man", "surrender, new perspective, pause", "stalling, sacrifice without meaning"},
	{"Death", "endings that clear the way, transformation", "clinging to what is over"},
	{"Temperance", "balance, patience, the middle path", "excess, impatience, misalignment"},
	{"The Devil", "attachment, temptation, shadow bargains", "release, reclaiming power"},
	{"The Tower", "sudden upheaval, revelation, collapse of the false", "disaster resisted, a lesson delayed"},
	{"The Star", "hope, renewal, quiet faith", "discouragement, faith dimmed"},
	{"The Moon", "dreams, uncertainty, the unconscious", "confusion lifting, fear released"},
	{"The Sun", "joy, vitality, clear success", "clouded optimism, delayed joy"},
	{"Judgement", "awakening, reckoning, a call answered", "self-doubt, a call ignored"},
	{"The World", "completion, wholeness, arrival", "loose ends, a cycle not yet closed"},
}

// Draw picks the card and orientation for a user on a given day.
// Same inputs always yield the same draw.
func Draw(userID int64, day journey.Day) (Card, string) {
	h := fnv.New64a()
	h.Write([]byte(day.String()))
	h.Write([]byte{
		byte(userID), byte(userID >> 8), byte(userID >> 16), byte(userID >> 24),
		byte(userID >> 32), byte(userID >> 40), byte(userID >> 48), byte(userID >> 56),
	})
	sum := h.Sum64()

	card := MajorArcana[sum%uint64(len(MajorArcana))]
	orientation := OrientationUpright
	if (sum>>32)&1 == 1 {
		orientation = OrientationReversed
	}
	return card, orientation
}

// Meaning returns the keyword meaning for the drawn orientation.
func (c Card) Meaning(orientation string) string {
	if orientation == OrientationReversed {
		return c.Reversed
	}
	return c.Upright
}
