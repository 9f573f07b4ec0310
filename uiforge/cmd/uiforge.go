// Command-line client for the uiforge API
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"uiforge/uiforge/client"
	"uiforge/uiforge/utils/apperr"
	"uiforge/uiforge/utils/color"
)

const usage = `usage: uiforge <command> [args]

commands:
  signup <email>      create an account
  login <email>       sign in
  logout              forget the stored token
  sessions            list your sessions
  new [title]         create a session and open it
  open <id>           open a session
  delete <id>         delete a session

environment:
  UIFORGE_URL         API base URL (default http://localhost:8000)
`

const detailHelp = `  /copy markup|style   copy code to the clipboard
  /download [path]     save Component.jsx and styles.css as a zip
  /preview [path]      write an HTML preview page
  /title <title>       rename the session
  /tab markup|style    choose the tab shown by /code
  /code                print the current code
  /quit                leave the session
  anything else is sent as a prompt`

type cli struct {
	api    *client.Client
	tokens tokenStore
	in     *bufio.Scanner
	out    io.Writer
}

func main() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color.Disable()
	}
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(2)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError(err.Error()))
		os.Exit(1)
	}
	baseURL := os.Getenv("UIFORGE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	c := &cli{
		api:    client.New(baseURL),
		tokens: tokenStore{path: filepath.Join(home, ".uiforge", "token")},
		in:     bufio.NewScanner(os.Stdin),
		out:    os.Stdout,
	}
	if err := c.run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError(describe(err)))
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "signup", "login":
		if len(args) < 2 {
			return fmt.Errorf("%s needs an email", args[0])
		}
		return c.authenticate(ctx, args[0], args[1])
	case "logout":
		if err := c.tokens.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(c.out, color.ColorInfo("Logged out."))
		return nil
	}

	ctx, err := c.authed(ctx)
	if err != nil {
		return err
	}
	switch args[0] {
	case "sessions":
		return c.listSessions(ctx)
	case "new":
		s, err := c.api.CreateSession(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		return c.detail(ctx, client.NewWorkspace(c.api, *s))
	case "open":
		if len(args) < 2 {
			return errors.New("open needs a session id")
		}
		w, err := client.OpenWorkspace(ctx, c.api, args[1])
		if err != nil {
			return err
		}
		return c.detail(ctx, w)
	case "delete":
		if len(args) < 2 {
			return errors.New("delete needs a session id")
		}
		if err := c.api.DeleteSession(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(c.out, color.ColorInfo("Session deleted."))
		return nil
	default:
		fmt.Fprint(c.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *cli) authenticate(ctx context.Context, mode, email string) error {
	password, err := c.ask("password: ")
	if err != nil {
		return err
	}
	var token string
	if mode == "signup" {
		token, err = c.api.Signup(ctx, email, password)
	} else {
		token, err = c.api.Login(ctx, email, password)
	}
	if err != nil {
		return err
	}
	if err := c.tokens.Save(token); err != nil {
		return err
	}
	fmt.Fprintln(c.out, color.ColorInfo("Signed in as "+email+"."))
	return nil
}

func (c *cli) authed(ctx context.Context) (context.Context, error) {
	token, err := c.tokens.Load()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errors.New("not logged in; run `uiforge login <email>`")
	}
	return client.WithToken(ctx, token), nil
}

func (c *cli) listSessions(ctx context.Context) error {
	sessions, err := c.api.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(c.out, color.ColorWarning("No sessions yet. Start one with `uiforge new`."))
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(c.out, "%s  %-32s  %s\n", s.ID, s.Title, s.UpdatedAt.Local().Format(time.DateTime))
	}
	return nil
}

// detail is the interactive loop for one open session.
func (c *cli) detail(ctx context.Context, w *client.Workspace) error {
	s := w.Session()
	fmt.Fprintf(c.out, "\n%s  (%s)\n", color.ColorPrompt(s.Title), s.ID)
	for _, m := range s.Chat {
		fmt.Fprintf(c.out, "%s: %s\n", color.ColorRole(m.Role), m.Content)
	}
	fmt.Fprintln(c.out, detailHelp)

	for {
		line, err := c.ask("uiforge> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			c.send(ctx, w, line)
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		switch cmd {
		case "/quit", "/exit":
			return nil
		case "/code":
			c.printCode(w)
		case "/tab":
			c.report(w.SetTab(ctx, arg), "Tab set to "+arg+".")
		case "/copy":
			if arg == "" {
				arg = w.ActiveTab()
			}
			c.report(w.Copy(arg), "Copied "+arg+" to the clipboard.")
		case "/title":
			c.report(w.Rename(ctx, arg), "Renamed.")
		case "/download":
			if arg == "" {
				arg = "component.zip"
			}
			data, err := w.Archive()
			if err == nil {
				err = os.WriteFile(arg, data, 0o644)
			}
			c.report(err, "Saved "+arg+".")
		case "/preview":
			if arg == "" {
				arg = "preview.html"
			}
			page, err := w.Preview()
			if err == nil {
				err = os.WriteFile(arg, []byte(page), 0o644)
			}
			c.report(err, "Wrote "+arg+". Generated code runs when opened; only preview output you trust.")
		default:
			fmt.Fprintln(c.out, detailHelp)
		}
	}
}

func (c *cli) send(ctx context.Context, w *client.Workspace, prompt string) {
	fmt.Fprintln(c.out, color.ColorInfo("Generating..."))
	if err := w.Send(ctx, prompt); err != nil {
		// a failed send leaves the previous code in place
		fmt.Fprintln(c.out, color.ColorError(describe(err)))
		return
	}
	s := w.Session()
	last := s.Chat[len(s.Chat)-1]
	fmt.Fprintf(c.out, "%s: %s\n", color.ColorRole(last.Role), last.Content)
	c.printCode(w)
}

func (c *cli) printCode(w *client.Workspace) {
	code := w.Session().Code
	if code.MarkupText == "" && code.StyleText == "" {
		fmt.Fprintln(c.out, color.ColorWarning("No code yet."))
		return
	}
	if w.ActiveTab() == client.TabStyle {
		fmt.Fprintln(c.out, color.ColorPrompt("--- styles.css ---"))
		fmt.Fprintln(c.out, color.ColorCode(code.StyleText))
		return
	}
	fmt.Fprintln(c.out, color.ColorPrompt("--- Component.jsx ---"))
	fmt.Fprintln(c.out, color.ColorCode(code.MarkupText))
}

func (c *cli) report(err error, ok string) {
	if err != nil {
		fmt.Fprintln(c.out, color.ColorError(describe(err)))
		return
	}
	fmt.Fprintln(c.out, color.ColorInfo(ok))
}

func (c *cli) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, color.ColorPrompt(prompt))
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case client.IsSendError(err):
		return err.Error()
	case errors.Is(err, apperr.ErrUnauthorized):
		return "Not authorized. Run `uiforge login <email>` again."
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return err.Error()
	}
}

// tokenStore keeps the bearer token in a private file.
type tokenStore struct {
	path string
}

func (t tokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(t.path, []byte(token+"\n"), 0o600)
}

func (t tokenStore) Load() (string, error) {
	data, err := os.ReadFile(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (t tokenStore) Clear() error {
	err := os.Remove(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
