package domain

// Tag annotates entries (part of speech, usage, frequency list, ...).
// Entries refer to tags by Name.
type Tag struct {
	Name     string
	Category string
	Order    int
	Notes    string
	Score    int
}
