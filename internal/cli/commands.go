package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"fintrack/internal/api"
	"fintrack/internal/dashboard"
	"fintrack/internal/session"
)

// ErrUsage marks a malformed command line; the message has already been
// printed with the usage text.
var ErrUsage = errors.New("usage error")

const usage = `Usage: fintrack <command> [arguments]

Commands:
  login [-email E] [-password P]           sign in and store the token
  register [-name N] [-email E] [-password P]
  logout                                    forget the stored token
  whoami                                    show what the stored token says
  dashboard                                 totals, charts, latest activity, budgets
  transactions [list] [-type T] [-min N] [-max N]
  transactions add -type T -category C -amount N
  transactions edit <id> [-type T] [-category C] [-amount N]
  transactions delete <id>
  budgets [list]
  budgets add -category C -amount N [-period monthly|yearly]
  budgets edit <id> [-category C] [-amount N] [-period P]
  budgets delete <id>
  analysis                                  AI insights with monthly and daily series
  theme [light|dark|toggle]                 show or change the display theme
`

type command func(ctx context.Context, args []string) error

// Run executes one command line.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.Stderr, usage)
		return ErrUsage
	}

	commands := map[string]command{
		"login":        a.runLogin,
		"register":     a.runRegister,
		"logout":       a.runLogout,
		"whoami":       a.runWhoami,
		"dashboard":    a.runDashboard,
		"transactions": a.runTransactions,
		"budgets":      a.runBudgets,
		"analysis":     a.runAnalysis,
		"theme":        a.runTheme,
	}
	switch args[0] {
	case "help", "-h", "-help", "--help":
		fmt.Fprint(a.Stdout, usage)
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.Stderr, "unknown command %q\n\n%s", args[0], usage)
		return ErrUsage
	}

	err := cmd(ctx, args[1:])
	if api.IsUnauthorized(err) || errors.Is(err, dashboard.ErrNotLoggedIn) {
		return fmt.Errorf("%w (run 'fintrack login')", err)
	}
	return err
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	return fs
}

// parse parses flags that may follow positional arguments.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, ErrUsage
			}
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("FINTRACK_PASSWORD"), "account password (default $FINTRACK_PASSWORD)")
	if _, err := parse(fs, args); err != nil {
		return err
	}

	e, err := a.valueOr(*email, "Email", false)
	if err != nil {
		return err
	}
	p, err := a.valueOr(*password, "Password", true)
	if err != nil {
		return err
	}

	if _, err := a.Auth.Login(ctx, e, p); err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, "Logged in.")
	return nil
}

func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := a.flags("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", os.Getenv("FINTRACK_PASSWORD"), "account password (default $FINTRACK_PASSWORD)")
	if _, err := parse(fs, args); err != nil {
		return err
	}

	n, err := a.valueOr(*name, "Name", false)
	if err != nil {
		return err
	}
	e, err := a.valueOr(*email, "Email", false)
	if err != nil {
		return err
	}
	p, err := a.valueOr(*password, "Password", true)
	if err != nil {
		return err
	}

	if err := a.Auth.Register(ctx, n, e, p); err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, dashboard.RegisteredMessage)
	return nil
}

func (a *App) runLogout(ctx context.Context, _ []string) error {
	if err := a.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, "Logged out.")
	return nil
}

func (a *App) runWhoami(ctx context.Context, _ []string) error {
	sess, err := a.Auth.RequireSession(ctx)
	if err != nil {
		return err
	}

	info, err := session.Inspect(sess.Token())
	if err != nil {
		fmt.Fprintln(a.Stdout, "Logged in with an opaque token.")
		return nil
	}
	subject := info.Subject
	if subject == "" {
		subject = "(unknown user)"
	}
	fmt.Fprintf(a.Stdout, "Logged in as %s\n", subject)
	if !info.IssuedAt.IsZero() {
		fmt.Fprintf(a.Stdout, "Issued:  %s\n", info.IssuedAt.Local().Format(time.DateTime))
	}
	if !info.ExpiresAt.IsZero() {
		note := ""
		if info.Expired(time.Now()) {
			note = " (expired)"
		}
		fmt.Fprintf(a.Stdout, "Expires: %s%s\n", info.ExpiresAt.Local().Format(time.DateTime), note)
	}
	return nil
}

func (a *App) runDashboard(ctx context.Context, _ []string) error {
	sess, err := a.Auth.RequireSession(ctx)
	if err != nil {
		return err
	}
	o := a.Home.Overview(ctx, sess)
	fmt.Fprintln(a.Stdout, a.renderer(ctx).Overview(o))

	if err := o.Err(); err != nil && api.IsUnauthorized(err) {
		return err
	}
	return nil
}

func (a *App) runAnalysis(ctx context.Context, _ []string) error {
	sess, err := a.Auth.RequireSession(ctx)
	if err != nil {
		return err
	}
	r := a.renderer(ctx)

	view, err := a.Analyzer.Analysis(ctx, sess, func(early *dashboard.Analysis) {
		fmt.Fprintln(a.Stdout, r.Analysis(early))
		fmt.Fprintln(a.Stdout)
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, r.Analysis(view))
	return nil
}

func (a *App) runTheme(ctx context.Context, args []string) error {
	current, err := a.Preferences.Theme(ctx)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Fprintln(a.Stdout, current)
		return nil
	}

	next := current.Toggle()
	if args[0] != "toggle" {
		if next, err = dashboard.ParseTheme(args[0]); err != nil {
			return err
		}
	}
	if err := a.Preferences.SetTheme(ctx, next); err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "Theme set to %s.\n", next)
	return nil
}

// subcommand splits "list|add|edit|delete" off args; list is the default.
func subcommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "list", args
	}
	return args[0], args[1:]
}

func requireID(positional []string) (string, error) {
	if len(positional) != 1 || positional[0] == "" {
		return "", fmt.Errorf("%w: expected exactly one id", ErrUsage)
	}
	return positional[0], nil
}
