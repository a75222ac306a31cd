// Package cli implements the reflect terminal client commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/AnshRaj112/reflect-backend/internal/client"
	"github.com/AnshRaj112/reflect-backend/internal/logger"
	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/moods"
)

// Context is bound to every command's Run method.
type Context struct {
	Ctx    context.Context
	API    *client.Client
	APIURL string
	Out    io.Writer
	// Prompter asks for input; huh forms unless replaced in tests.
	Prompter Prompter
}

// NewContext returns a Context talking to apiURL. A missing session is not an
// error here; commands that need one fail when they call currentUser.
func NewContext(ctx context.Context, apiURL, envToken string) *Context {
	token, err := LoadToken(envToken)
	if err != nil && !errors.Is(err, ErrNoSession) {
		logger.Warn("could not read session from keyring", "error", err)
	}
	return &Context{
		Ctx:      ctx,
		API:      client.New(apiURL, token),
		APIURL:   apiURL,
		Out:      os.Stdout,
		Prompter: HuhPrompter{},
	}
}

// currentUser resolves the session to a user and fails with ErrNoSession
// when there is none.
func (c *Context) currentUser() (models.User, error) {
	user, err := c.API.Me(c.Ctx)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return models.User{}, ErrNoSession
	}
	return user, err
}

type SignupCmd struct {
	Username string `arg:"" help:"Anonymous username (3-20 letters, numbers or underscores)."`
}

func (cmd *SignupCmd) Run(c *Context) error {
	password, err := c.Prompter.Password("Choose a password", true)
	if err != nil {
		return err
	}
	user, err := c.API.SignUp(c.Ctx, cmd.Username, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, successStyle.Render("Account "+user.Username+" created."))
	return login(c, user.Username, password)
}

type LoginCmd struct {
	Username string `arg:"" help:"Your username."`
}

func (cmd *LoginCmd) Run(c *Context) error {
	password, err := c.Prompter.Password("Password", false)
	if err != nil {
		return err
	}
	return login(c, cmd.Username, password)
}

func login(c *Context, username, password string) error {
	token, user, err := c.API.SignIn(c.Ctx, username, password)
	if err != nil {
		return err
	}
	if err := SaveToken(token); err != nil {
		fmt.Fprintln(c.Out, errorStyle.Render(err.Error()))
		fmt.Fprintln(c.Out, "Set REFLECT_TOKEN="+token+" to stay signed in.")
		return nil
	}
	logger.Info("signed in", "user_id", user.ID)
	fmt.Fprintln(c.Out, successStyle.Render("Signed in as "+user.Username+"."))
	return nil
}

type LogoutCmd struct{}

func (cmd *LogoutCmd) Run(c *Context) error {
	if err := c.API.SignOut(c.Ctx); err != nil {
		logger.Warn("server sign-out failed", "error", err)
	}
	if err := DeleteToken(); err != nil {
		return err
	}
	fmt.Fprintln(c.Out, "Signed out.")
	return nil
}

type CollectionsListCmd struct{}

func (cmd *CollectionsListCmd) Run(c *Context) error {
	user, err := c.currentUser()
	if err != nil {
		return err
	}
	cols, err := c.API.ListCollections(c.Ctx, user.ID)
	if err != nil {
		return err
	}
	_, unorganized, err := c.API.ListEntries(c.Ctx, models.UnorganizedCollectionID, 1, 0)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.Out, titleStyle.Render("Collections"))
	for _, col := range cols {
		line := fmt.Sprintf("  %s  %s", col.Name, mutedStyle.Render(col.ID))
		if col.Description != "" {
			line += "\n    " + col.Description
		}
		fmt.Fprintln(c.Out, line)
	}
	fmt.Fprintf(c.Out, "  %s  %s\n", "Unorganized", mutedStyle.Render(fmt.Sprintf("%d entries", unorganized)))
	return nil
}

type CollectionsCreateCmd struct {
	Name        string `arg:"" help:"Collection name."`
	Description string `short:"d" help:"Optional description."`
}

func (cmd *CollectionsCreateCmd) Run(c *Context) error {
	user, err := c.currentUser()
	if err != nil {
		return err
	}
	col, err := c.API.CreateCollection(c.Ctx, user.ID, models.CollectionInput{
		Name:        strings.TrimSpace(cmd.Name),
		Description: cmd.Description,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, successStyle.Render(fmt.Sprintf("Collection %s created!", col.Name)))
	return nil
}

type MoodsCmd struct {
	// Local skips the server and prints the catalog built into the client.
	Local bool `help:"Print the built-in catalog without contacting the server."`
}

func (cmd *MoodsCmd) Run(c *Context) error {
	list := moods.All()
	if !cmd.Local {
		remote, err := c.API.Moods(c.Ctx)
		if err != nil {
			return err
		}
		list = remote
	}
	for _, m := range list {
		fmt.Fprintf(c.Out, "%s %-12s %s\n", m.Emoji, m.Label, mutedStyle.Render(m.Prompt))
	}
	return nil
}

// Prompter asks the user for input.
type Prompter interface {
	Password(title string, confirm bool) (string, error)
	// EditEntry lets the user change title, mood and content in place.
	EditEntry(v *EntryFields, prompt func(mood string) string) error
	Choose(title string, options []Option) (string, error)
	Input(title, errMsg string) (string, error)
}

// EntryFields are the values EditEntry changes.
type EntryFields struct {
	Title   string
	Mood    string
	Content string
}

// Option is one choice of Choose.
type Option struct {
	Label string
	Value string
}

// HuhPrompter asks through huh forms.
type HuhPrompter struct{}

func (HuhPrompter) Password(title string, confirm bool) (string, error) {
	var password, again string
	fields := []huh.Field{
		huh.NewInput().Title(title).EchoMode(huh.EchoModePassword).Value(&password).
			Validate(func(s string) error {
				if len(s) < 8 {
					return errors.New("password must be at least 8 characters")
				}
				return nil
			}),
	}
	if confirm {
		fields = append(fields, huh.NewInput().Title("Repeat password").EchoMode(huh.EchoModePassword).Value(&again).
			Validate(func(s string) error {
				if s != password {
					return errors.New("passwords do not match")
				}
				return nil
			}))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return "", err
	}
	return password, nil
}

func (HuhPrompter) EditEntry(v *EntryFields, prompt func(mood string) string) error {
	opts := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, m := range moods.All() {
		opts = append(opts, huh.NewOption(m.Emoji+" "+m.Label, m.ID))
	}
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&v.Title),
		huh.NewSelect[string]().Title("How are you feeling?").Options(opts...).Value(&v.Mood),
	)).Run()
	if err != nil {
		return err
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewText().Title(prompt(v.Mood)).Value(&v.Content),
	)).Run()
}

func (HuhPrompter) Choose(title string, options []Option) (string, error) {
	var value string
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(opts...).Value(&value),
	)).Run(); err != nil {
		return "", err
	}
	return value, nil
}

func (HuhPrompter) Input(title, errMsg string) (string, error) {
	var value string
	in := huh.NewInput().Title(title).Value(&value)
	if errMsg != "" {
		in = in.Description(errorStyle.Render(errMsg))
	}
	if err := huh.NewForm(huh.NewGroup(in)).Run(); err != nil {
		return "", err
	}
	return value, nil
}
