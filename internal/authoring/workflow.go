// Package authoring drives the form used to write a new journal entry or edit
// an existing one. It holds no UI: a host renders Values, forwards user input
// to the setters, and shows what the Notifier and Navigator receive.
//
// A Workflow is not safe for concurrent use. Hosts deliver user events and call
// results one at a time, the same way a UI event loop would.
package authoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnshRaj112/reflect-backend/internal/fetch"
	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/moods"
	"github.com/AnshRaj112/reflect-backend/internal/validation"
)

// NewCollectionOption is the collection selector value that opens the
// collection dialog instead of selecting a collection.
const NewCollectionOption = "new"

var (
	ErrNotEditMode   = errors.New("only available when editing an entry")
	ErrNotCreateMode = errors.New("drafts are only available for new entries")
	ErrNoChanges     = errors.New("no changes to save")
)

// Mode tells whether the workflow creates a new entry or edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Values are the form fields.
type Values struct {
	Title        string
	Content      string
	Mood         string
	CollectionID string
}

// InitResult is what Init loaded: either EditInit or CreateInit.
type InitResult interface {
	mode() Mode
}

// EditInit carries the entry being edited.
type EditInit struct {
	Entry models.JournalEntry
}

// CreateInit carries the saved draft, or nil when there is none.
type CreateInit struct {
	Draft *models.Draft
}

func (EditInit) mode() Mode   { return ModeEdit }
func (CreateInit) mode() Mode { return ModeCreate }

// InitialValues maps whatever Init loaded to the starting form values.
// A draft never carries a collection.
func InitialValues(r InitResult) Values {
	switch v := r.(type) {
	case EditInit:
		return Values{
			Title:        v.Entry.Title,
			Content:      v.Entry.Content,
			Mood:         v.Entry.Mood,
			CollectionID: v.Entry.CollectionID,
		}
	case CreateInit:
		if v.Draft == nil {
			return Values{}
		}
		return Values{
			Title:   v.Draft.Title,
			Content: v.Draft.Content,
			Mood:    v.Draft.Mood,
		}
	}
	return Values{}
}

// Config wires a Workflow to its collaborators.
type Config struct {
	UserID string
	// EditID selects edit mode when set.
	EditID    string
	Actions   Actions
	Notifier  Notifier
	Navigator Navigator
}

// Workflow is the entry authoring form.
type Workflow struct {
	userID string
	editID string
	notify Notifier
	nav    Navigator
	Dialog *CollectionDialog

	collections *fetch.Invoker[struct{}, []models.Collection]
	entry       *fetch.Invoker[string, models.JournalEntry]
	draft       *fetch.Invoker[struct{}, *models.Draft]
	saveDraft   *fetch.Invoker[models.DraftInput, struct{}]
	publish     *fetch.Invoker[models.EntryInput, models.JournalEntry]

	values   Values
	baseline Values
	errs     validation.Errors
}

// New returns a Workflow; call Init before rendering it.
func New(cfg Config) *Workflow {
	w := &Workflow{
		userID: cfg.UserID,
		editID: cfg.EditID,
		notify: cfg.Notifier,
		nav:    cfg.Navigator,
	}
	a := cfg.Actions

	w.collections = fetch.New(func(ctx context.Context, _ struct{}) ([]models.Collection, error) {
		return a.ListCollections(ctx, w.userID)
	})
	w.entry = fetch.New(func(ctx context.Context, id string) (models.JournalEntry, error) {
		return a.GetEntry(ctx, w.userID, id)
	})
	w.draft = fetch.New(func(ctx context.Context, _ struct{}) (*models.Draft, error) {
		return a.GetDraft(ctx, w.userID)
	})
	w.saveDraft = fetch.New(func(ctx context.Context, in models.DraftInput) (struct{}, error) {
		return struct{}{}, a.SaveDraft(ctx, w.userID, in)
	})
	w.publish = fetch.New(func(ctx context.Context, in models.EntryInput) (models.JournalEntry, error) {
		if w.Mode() == ModeEdit {
			return a.UpdateEntry(ctx, w.userID, in)
		}
		return a.CreateEntry(ctx, w.userID, in)
	})
	w.Dialog = NewCollectionDialog(func(ctx context.Context, in models.CollectionInput) (models.Collection, error) {
		return a.CreateCollection(ctx, w.userID, in)
	})
	return w
}

func (w *Workflow) Mode() Mode {
	if w.editID != "" {
		return ModeEdit
	}
	return ModeCreate
}

// Init loads the collection list and then either the entry being edited or
// the user's draft, and resets the form from it. A failure to load the edit
// target is returned; a missing or unreadable draft starts an empty form.
func (w *Workflow) Init(ctx context.Context) (InitResult, error) {
	if _, err := w.collections.Run(ctx, struct{}{}); err != nil {
		w.notify.Error(err.Error())
	}

	var result InitResult
	if w.Mode() == ModeEdit {
		entry, err := w.entry.Run(ctx, w.editID)
		if err != nil {
			w.notify.Error(err.Error())
			return nil, err
		}
		result = EditInit{Entry: entry}
	} else {
		draft, err := w.draft.Run(ctx, struct{}{})
		if err != nil {
			w.notify.Error(err.Error())
			draft = nil
		}
		result = CreateInit{Draft: draft}
	}

	w.reset(InitialValues(result))
	return result, nil
}

func (w *Workflow) reset(v Values) {
	w.values = v
	w.baseline = v
	w.errs = nil
}

func (w *Workflow) Values() Values { return w.values }

// FieldErrors returns the inline errors from the last Submit.
func (w *Workflow) FieldErrors() validation.Errors { return w.errs }

// Dirty reports unsaved changes since the form was loaded or the draft saved.
func (w *Workflow) Dirty() bool { return w.values != w.baseline }

// Busy is true while any remote call runs. Hosts disable inputs meanwhile.
func (w *Workflow) Busy() bool {
	return w.collections.Loading() ||
		w.entry.Loading() ||
		w.draft.Loading() ||
		w.publish.Loading() ||
		w.saveDraft.Loading()
}

// Submitting and SavingDraft gate the submit and save-draft buttons.
func (w *Workflow) Submitting() bool  { return w.publish.Loading() }
func (w *Workflow) SavingDraft() bool { return w.saveDraft.Loading() }

// CanSubmit reports whether the submit control should be enabled: the form
// has changes and no publish is running. Submit itself does not check it.
func (w *Workflow) CanSubmit() bool { return w.Dirty() && !w.Submitting() }

// Collections returns the last loaded collection list.
func (w *Workflow) Collections() []models.Collection {
	cols, _ := w.collections.Data()
	return cols
}

// Prompt is the label shown above the editor for the selected mood.
func (w *Workflow) Prompt() string { return moods.PromptFor(w.values.Mood) }

func (w *Workflow) SetTitle(s string)   { w.values.Title = s }
func (w *Workflow) SetContent(s string) { w.values.Content = s }
func (w *Workflow) SetMood(id string)   { w.values.Mood = id }

// SelectCollection sets the collection, or opens the collection dialog when
// value is NewCollectionOption. An empty value clears the selection.
func (w *Workflow) SelectCollection(value string) {
	if value == NewCollectionOption {
		w.Dialog.Open()
		return
	}
	w.values.CollectionID = value
}

// CreateCollection submits the collection dialog. On success the dialog
// closes, the collection list is reloaded and the new collection is selected.
func (w *Workflow) CreateCollection(ctx context.Context, name string) (models.Collection, error) {
	col, err := w.Dialog.Submit(ctx, name)
	if err != nil {
		var verrs validation.Errors
		if !errors.As(err, &verrs) && !errors.Is(err, fetch.ErrInFlight) {
			w.notify.Error(err.Error())
		}
		return models.Collection{}, err
	}

	w.Dialog.Close()
	if _, err := w.collections.Run(ctx, struct{}{}); err != nil {
		w.notify.Error(err.Error())
	}
	w.values.CollectionID = col.ID
	w.notify.Success(fmt.Sprintf("Collection %s created!", col.Name))
	return col, nil
}

// Submit validates the form and publishes it: update in edit mode, create
// otherwise. A successful create also clears the draft.
func (w *Workflow) Submit(ctx context.Context) (models.JournalEntry, error) {
	v := w.values
	if errs := validation.ValidateEntry(validation.EntryFields{
		Title:        v.Title,
		Content:      v.Content,
		Mood:         v.Mood,
		CollectionID: v.CollectionID,
	}); errs != nil {
		w.errs = errs
		return models.JournalEntry{}, errs
	}
	w.errs = nil

	mood, _ := moods.Lookup(v.Mood)
	in := models.EntryInput{
		Title:          v.Title,
		Content:        v.Content,
		Mood:           v.Mood,
		MoodScore:      mood.Score,
		MoodImageQuery: mood.ImageQuery,
		CollectionID:   v.CollectionID,
	}
	if w.Mode() == ModeEdit {
		in.ID = w.editID
	}

	entry, err := w.publish.Run(ctx, in)
	if err != nil {
		if !errors.Is(err, fetch.ErrInFlight) {
			w.notify.Error(err.Error())
		}
		return models.JournalEntry{}, err
	}

	verb := "updated"
	if w.Mode() == ModeCreate {
		verb = "created"
		if _, err := w.saveDraft.Run(ctx, models.DraftInput{}); err != nil {
			w.notify.Error(err.Error())
		}
	}
	w.baseline = w.values

	target := entry.CollectionID
	if target == "" {
		target = models.UnorganizedCollectionID
	}
	w.nav.Navigate("/collection/" + target)
	w.notify.Success(fmt.Sprintf("Entry %s successfully!", verb))
	return entry, nil
}

// SaveDraft stores title, content and mood as the user's draft. Without
// unsaved changes it only shows an error.
func (w *Workflow) SaveDraft(ctx context.Context) error {
	if w.Mode() != ModeCreate {
		return ErrNotCreateMode
	}
	if !w.Dirty() {
		w.notify.Error("No changes to save")
		return ErrNoChanges
	}

	saved := w.values
	_, err := w.saveDraft.Run(ctx, models.DraftInput{
		Title:   saved.Title,
		Content: saved.Content,
		Mood:    saved.Mood,
	})
	if err != nil {
		if !errors.Is(err, fetch.ErrInFlight) {
			w.notify.Error(err.Error())
		}
		return err
	}
	w.baseline = saved
	w.notify.Success("Draft saved successfully")
	return nil
}

// Cancel leaves the edit form for the entry's own page without saving.
func (w *Workflow) Cancel() error {
	if w.Mode() != ModeEdit {
		return ErrNotEditMode
	}
	w.nav.Navigate("/journal/" + w.editID)
	return nil
}
