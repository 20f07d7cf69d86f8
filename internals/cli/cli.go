package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"quizbuilder_backend/internals/features/quizzes/client"
	helper "quizbuilder_backend/internals/helpers"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const requestTimeout = 10 * time.Second

// Env is everything a command talks to. Zero fields fall back to the
// process defaults.
type Env struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Doer    client.HTTPDoer
	NoColor bool
}

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, env *Env) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	return RunEnv(args, &Env{Stdin: os.Stdin, Stdout: stdout, Stderr: stderr})
}

func RunEnv(args []string, env *Env) int {
	if env.Stdin == nil {
		env.Stdin = os.Stdin
	}
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(env.Stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return cmd.Run(args[1:], env)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  quizctl <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nThe API base URL comes from --url or QUIZ_API_URL.")
	fmt.Fprintln(w, "Use \"quizctl <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, env *Env) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands []*Command

func init() {
	commands = []*Command{
		command("list", "List stored quizzes, newest first", []string{
			"quizctl list [--url <api>]",
		}, runList),
		command("show", "Show a quiz and its answer key", []string{
			"quizctl show [--url <api>] <quiz-id>",
		}, runShow),
		command("delete", "Delete a quiz", []string{
			"quizctl delete [--url <api>] [--yes] <quiz-id>",
		}, runDelete),
		command("create", "Create quizzes from a YAML file", []string{
			"quizctl create [--url <api>] -f <quiz.yaml>",
		}, runCreate),
		command("author", "Compose a quiz interactively", []string{
			"quizctl author [--url <api>]",
		}, runAuthor),
	}
}

func (env *Env) client(baseURL string) *client.Client {
	return client.New(baseURL, env.Doer)
}

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// printError writes err, listing field errors one per line.
func printError(w io.Writer, err error) {
	var fields helper.FieldErrors
	switch e := err.(type) {
	case *client.APIError:
		fields = e.Fields
	case *helper.AppError:
		fields = e.Fields
	}
	if len(fields) == 0 {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, "Validation failed:")
	for _, path := range fields.Paths() {
		for _, msg := range fields[path] {
			if path == "" {
				fmt.Fprintf(w, "  %s\n", msg)
			} else {
				fmt.Fprintf(w, "  %s: %s\n", path, msg)
			}
		}
	}
}
