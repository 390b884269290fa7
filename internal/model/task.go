package model

import "time"

// Syllable is one element of a task's ordered syllable sequence. Syllables
// are embedded in their task and are not independently addressable.
type Syllable struct {
	Syllable  string `json:"syllable"`  // display text of the syllable
	IsPhoneme bool   `json:"isPhoneme"` // marks the phonetic focus of the word
}

// Task is a learning unit: a word broken into syllables, tagged with the
// speech sound ("phoneme") it trains. Image and audio assets are not stored
// on the record; they live in the object store under keys derived from the
// normalized task name. Tasks are hard-deleted.
type Task struct {
	ID        uint64     // tasks.id
	Name      string     // tasks.name
	Phoneme   string     // tasks.phoneme
	Syllables []Syllable // tasks.syllables (JSON column, order preserved)
	CreatedAt time.Time  // tasks.created_at
	UpdatedAt time.Time  // tasks.updated_at
}

// SyllableView is a syllable enriched with its resolved audio URL. An empty
// AudioURL means the audio was never uploaded or the lookup failed.
type SyllableView struct {
	Syllable  string `json:"syllable"`
	IsPhoneme bool   `json:"isPhoneme"`
	AudioURL  string `json:"audioUrl"`
}

// TaskView is the fully assembled read model for a single task: the record
// plus the signed URLs for its image, its whole-word audio and each syllable.
type TaskView struct {
	ID        uint64         `json:"_id"`
	Name      string         `json:"name"`
	Phoneme   string         `json:"phoneme"`
	ImgURL    string         `json:"imgUrl"`
	AudioURL  string         `json:"audioUrl"`
	Syllables []SyllableView `json:"syllables"`
}

// TaskSummary is the thin list representation used by the grouped and
// backoffice listings. No asset URLs are resolved for summaries.
type TaskSummary struct {
	ID        uint64     `json:"_id"`
	Name      string     `json:"name"`
	Phoneme   string     `json:"phoneme"`
	Syllables []Syllable `json:"syllables"`
	CreatedAt time.Time  `json:"_createdAt"`
}

// PhonemeGroup is one bucket of the grouped task listing.
type PhonemeGroup struct {
	Phoneme string        `json:"phoneme"`
	Tasks   []TaskSummary `json:"tasks"`
}
