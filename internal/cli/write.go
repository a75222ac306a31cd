package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/huh"

	"github.com/AnshRaj112/reflect-backend/internal/authoring"
	"github.com/AnshRaj112/reflect-backend/internal/moods"
	"github.com/AnshRaj112/reflect-backend/internal/validation"
)

const (
	actionPublish    = "publish"
	actionSaveDraft  = "draft"
	actionEditText   = "edit"
	actionCollection = "collection"
	actionCancel     = "cancel"
)

type WriteCmd struct {
	Edit string `help:"Edit the entry with this id instead of writing a new one." placeholder:"ID"`
}

func (cmd *WriteCmd) Run(c *Context) error {
	user, err := c.currentUser()
	if err != nil {
		return err
	}
	toast := NewToaster(c.Out)
	w := authoring.New(authoring.Config{
		UserID:    user.ID,
		EditID:    cmd.Edit,
		Actions:   c.API,
		Notifier:  toast,
		Navigator: toast,
	})
	return runWorkflow(c.Ctx, c.Prompter, toast, w)
}

// runWorkflow hosts w until the entry is published or the user leaves.
// Every user event is handled to completion before the next prompt.
func runWorkflow(ctx context.Context, p Prompter, toast *Toaster, w *authoring.Workflow) error {
	loaded, err := w.Init(ctx)
	if err != nil {
		return fmt.Errorf("could not open the entry: %w", err)
	}
	if ci, ok := loaded.(authoring.CreateInit); ok && ci.Draft != nil {
		toast.Success("Restored your draft")
	}

	if err := editText(p, w); err != nil {
		return abortIsQuit(err)
	}

	for {
		action, err := p.Choose(fmt.Sprintf("%s entry", modeLabel(w)), actionsFor(w))
		if err != nil {
			return abortIsQuit(err)
		}

		switch action {
		case actionEditText:
			if err := editText(p, w); err != nil {
				return abortIsQuit(err)
			}
		case actionCollection:
			if err := chooseCollection(ctx, p, w); err != nil {
				return err
			}
		case actionSaveDraft:
			// Failures are already shown by the workflow.
			_ = w.SaveDraft(ctx)
		case actionPublish:
			if !w.CanSubmit() {
				toast.Error("No changes to publish")
				continue
			}
			_, err := w.Submit(ctx)
			if err == nil {
				return nil
			}
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				showFieldErrors(toast, verrs)
			}
		case actionCancel:
			if w.Mode() == authoring.ModeEdit {
				return w.Cancel()
			}
			if w.Dirty() {
				toast.Error("Unsaved changes discarded")
			}
			return nil
		}
	}
}

func modeLabel(w *authoring.Workflow) string {
	if w.Mode() == authoring.ModeEdit {
		return "Edit"
	}
	return "New"
}

func actionsFor(w *authoring.Workflow) []Option {
	publish := "Publish"
	if w.Mode() == authoring.ModeEdit {
		publish = "Update"
	}
	opts := []Option{
		{Label: publish, Value: actionPublish},
		{Label: "Edit text", Value: actionEditText},
		{Label: "Choose collection", Value: actionCollection},
	}
	if w.Mode() == authoring.ModeCreate {
		opts = append(opts, Option{Label: "Save draft", Value: actionSaveDraft}, Option{Label: "Quit", Value: actionCancel})
	} else {
		opts = append(opts, Option{Label: "Cancel", Value: actionCancel})
	}
	return opts
}

func editText(p Prompter, w *authoring.Workflow) error {
	v := w.Values()
	fields := EntryFields{Title: v.Title, Mood: v.Mood, Content: v.Content}
	if err := p.EditEntry(&fields, moods.PromptFor); err != nil {
		return err
	}
	w.SetTitle(fields.Title)
	w.SetMood(fields.Mood)
	w.SetContent(fields.Content)
	return nil
}

// chooseCollection offers the user's collections plus the "new collection"
// option, and keeps the creation dialog up until it succeeds or is aborted.
func chooseCollection(ctx context.Context, p Prompter, w *authoring.Workflow) error {
	opts := []Option{{Label: "Unorganized", Value: ""}}
	for _, col := range w.Collections() {
		opts = append(opts, Option{Label: col.Name, Value: col.ID})
	}
	opts = append(opts, Option{Label: "+ New collection", Value: authoring.NewCollectionOption})

	value, err := p.Choose("Collection", opts)
	if err != nil {
		return abortIsQuit(err)
	}
	w.SelectCollection(value)

	var errMsg string
	for w.Dialog.IsOpen() {
		name, err := p.Input("New collection name", errMsg)
		if err != nil {
			w.Dialog.Close()
			return abortIsQuit(err)
		}
		if _, err := w.CreateCollection(ctx, name); err != nil {
			errMsg = w.Dialog.FieldErrors()[validation.FieldName]
		}
	}
	return nil
}

func showFieldErrors(toast *Toaster, errs validation.Errors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		toast.Error(errs[f])
	}
}

// abortIsQuit turns a user abort (ctrl+c in a form) into a clean exit.
func abortIsQuit(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}
