// Package insight generates personalized readings through a
// large-language-model API: the daily card interpretation and the
// two-stage palm reading.
// models.go describes the extracted palm features and the stored result.
package insight

import "time"

// PalmFeatures is the structured output of palm-reading stage one.
// Field names are the JSON contract with the model prompt.
type PalmFeatures struct {
	LifeLine          string `json:"life_line"`
	HeadLine          string `json:"head_line"`
	HeartLine         string `json:"heart_line"`
	FateLine          string `json:"fate_line"`
	OverallImpression string `json:"overall_impression"`
}

// PalmReading is one completed palm reading, persisted in
// palm_readings with the features as JSONB.
type PalmReading struct {
	ID        int64        `db:"id"`
	UserID    int64        `db:"user_id"`
	Features  PalmFeatures `db:"features"`
	Narrative string       `db:"narrative"`
	CreatedAt time.Time    `db:"created_at"`
}
