package domain

// Note is an append-only text entry owned by a user.
//
// Data is nil for plain notes and non-nil (possibly empty) for notes
// produced by a recall lookup.
type Note struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	CreatedAt string         `json:"created_at"`
	Data      []RecallRecord `json:"data"`
}

// IsRecallNote reports whether the note carries recall records.
func (n Note) IsRecallNote() bool {
	return n.Data != nil
}
