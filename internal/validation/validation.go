// Package validation holds the rules an entry or collection must satisfy
// before it is submitted.
package validation

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/AnshRaj112/reflect-backend/internal/moods"
)

// Field names used as keys in Errors.
const (
	FieldTitle        = "title"
	FieldContent      = "content"
	FieldMood         = "mood"
	FieldCollectionID = "collection_id"
	FieldName         = "name"
)

// MaxCollectionNameLength bounds collection names, in characters.
const MaxCollectionNameLength = 100

// Errors maps a field name to its message. A nil or empty Errors means valid.
type Errors map[string]string

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e[f])
	}
	return strings.Join(msgs, "; ")
}

// OrNil returns nil when there are no errors so callers can return it as error.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// EntryFields is what the entry form submits.
type EntryFields struct {
	Title        string
	Content      string
	Mood         string
	CollectionID string
}

// ValidateEntry checks title, content and mood. Content is rich-text markup
// and is accepted as-is. CollectionID is optional; whether it references an
// existing collection is checked by the store.
func ValidateEntry(f EntryFields) Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if strings.TrimSpace(f.Content) == "" {
		errs[FieldContent] = "Content is required"
	}
	if f.Mood == "" {
		errs[FieldMood] = "Please select a mood"
	} else if !moods.Valid(f.Mood) {
		errs[FieldMood] = "Please select a valid mood"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateCollectionName checks the single field of the collection dialog.
func ValidateCollectionName(name string) Errors {
	name = strings.TrimSpace(name)
	if name == "" {
		return Errors{FieldName: "Name is required"}
	}
	if utf8.RuneCountInString(name) > MaxCollectionNameLength {
		return Errors{FieldName: "Name must be at most 100 characters"}
	}
	return nil
}
