package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/MKhiriev/go-task-manager/internal/adapter"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

type command struct {
	usage string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"health":          {usage: "health", run: (*App).health},
	"register":        {usage: "register -name N -email E -password P", run: (*App).register},
	"login":           {usage: "login -email E -password P", run: (*App).login},
	"profile":         {usage: "profile", run: (*App).profile},
	"change-password": {usage: "change-password -old O -new N", run: (*App).changePassword},
	"projects":        {usage: "projects", run: (*App).projects},
	"tasks":           {usage: "tasks [-page N] [-limit N]", run: (*App).tasks},
	"create-task":     {usage: "create-task -title T -start YYYY-MM-DD -end YYYY-MM-DD -priority Low|Medium|High [-assignee ID]... [-project ID]...", run: (*App).createTask},
	"export":          {usage: "export -o tasks.xlsx", run: (*App).export},
}

type App struct {
	api    adapter.APIClient
	out    io.Writer
	logger *logger.Logger
}

// NewApp builds a client printing to out. token, when set, authenticates
// the commands that need it.
func NewApp(api adapter.APIClient, token string, out io.Writer, logger *logger.Logger) *App {
	if token != "" {
		api.SetToken(token)
	}
	return &App{api: api, out: out, logger: logger}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrMissingCommand
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}

	a.logger.Debug().Str("command", args[0]).Msg("running client command")
	if err := cmd.run(a, ctx, args[1:]); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	return nil
}

func (a *App) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "commands:")
	for _, name := range names {
		fmt.Fprintln(a.out, "  "+commands[name].usage)
	}
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *App) health(ctx context.Context, _ []string) error {
	health, err := a.api.Health(ctx)
	if err != nil {
		return err
	}
	return a.print(health)
}

func (a *App) register(ctx context.Context, args []string) error {
	var req models.RegisterRequest
	fs := newFlagSet("register")
	fs.StringVar(&req.Name, "name", "", "display name")
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := a.api.Register(ctx, req)
	if err != nil {
		return err
	}
	return a.print(auth)
}

func (a *App) login(ctx context.Context, args []string) error {
	var req models.LoginRequest
	fs := newFlagSet("login")
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := a.api.Login(ctx, req)
	if err != nil {
		return err
	}
	return a.print(auth)
}

func (a *App) profile(ctx context.Context, _ []string) error {
	user, err := a.api.Profile(ctx)
	if err != nil {
		return err
	}
	return a.print(user)
}

// changePassword sends the new password as its own confirmation.
func (a *App) changePassword(ctx context.Context, args []string) error {
	var req models.ChangePasswordRequest
	fs := newFlagSet("change-password")
	fs.StringVar(&req.OldPassword, "old", "", "current password")
	fs.StringVar(&req.NewPassword, "new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.ConfirmPassword = req.NewPassword

	auth, err := a.api.ChangePassword(ctx, req)
	if err != nil {
		return err
	}
	return a.print(auth)
}

func (a *App) projects(ctx context.Context, _ []string) error {
	projects, err := a.api.ListProjects(ctx)
	if err != nil {
		return err
	}
	return a.print(projects)
}

func (a *App) tasks(ctx context.Context, args []string) error {
	fs := newFlagSet("tasks")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tasks, err := a.api.ListTasks(ctx, *page, *limit)
	if err != nil {
		return err
	}
	return a.print(tasks)
}

// listFlag collects a repeated string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func (a *App) createTask(ctx context.Context, args []string) error {
	var (
		input     models.TaskInput
		assignees listFlag
		projects  listFlag
	)
	fs := newFlagSet("create-task")
	fs.StringVar(&input.Title, "title", "", "task title")
	fs.StringVar(&input.Description, "description", "", "task description")
	fs.StringVar(&input.StartDate, "start", "", "start date")
	fs.StringVar(&input.EndDate, "end", "", "end date")
	fs.StringVar(&input.Priority, "priority", string(models.PriorityMedium), "Low, Medium or High")
	fs.Var(&assignees, "assignee", "assignee user id, repeatable")
	fs.Var(&projects, "project", "project id, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	input.Assignees = assignees
	input.Projects = projects

	task, err := a.api.CreateTask(ctx, input)
	if err != nil {
		return err
	}
	return a.print(task)
}

func (a *App) export(ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	path := fs.String("o", "tasks.xlsx", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	workbook, err := a.api.ExportTasks(ctx)
	if err != nil {
		return err
	}
	if err = os.WriteFile(*path, workbook, 0o600); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	fmt.Fprintf(a.out, "exported %d bytes to %s\n", len(workbook), *path)
	return nil
}
