package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"quizbuilder_backend/internals/features/quizzes/authoring"
	"quizbuilder_backend/internals/features/quizzes/client"
	dto "quizbuilder_backend/internals/features/quizzes/dto"
	"quizbuilder_backend/internals/features/quizzes/tui"
	"quizbuilder_backend/internals/features/quizzes/viewer"
)

// parseFlags parses args into flags; ok is false when the command should
// stop and code is its exit status.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, env *Env) (ok bool, code int) {
	flags.SetOutput(env.Stderr)
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, env.Stdout)
			return false, ExitOK
		}
		fmt.Fprintf(env.Stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, env.Stderr)
		return false, ExitUsage
	}
	return true, ExitOK
}

func quizIDArg(cmd *Command, flags *flag.FlagSet, env *Env) (uuid.UUID, bool) {
	if flags.NArg() != 1 {
		fmt.Fprintln(env.Stderr, "expected exactly one quiz id")
		printCommandUsage(cmd, env.Stderr)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimSpace(flags.Arg(0)))
	if err != nil {
		fmt.Fprintf(env.Stderr, "invalid quiz id %q\n", flags.Arg(0))
		return uuid.Nil, false
	}
	return id, true
}

func runList(cmd *Command) func(args []string, env *Env) int {
	return func(args []string, env *Env) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		url := flags.String("url", "", "API base URL")
		if ok, code := parseFlags(cmd, flags, args, env); !ok {
			return code
		}

		ctx, cancel := withTimeout()
		defer cancel()
		items, err := env.client(*url).ListQuizzes(ctx)
		if err != nil {
			printError(env.Stderr, err)
			return ExitError
		}
		fmt.Fprint(env.Stdout, viewer.RenderList(items, viewer.Options{NoColor: env.NoColor}))
		return ExitOK
	}
}

func runShow(cmd *Command) func(args []string, env *Env) int {
	return func(args []string, env *Env) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		url := flags.String("url", "", "API base URL")
		if ok, code := parseFlags(cmd, flags, args, env); !ok {
			return code
		}
		id, ok := quizIDArg(cmd, flags, env)
		if !ok {
			return ExitUsage
		}

		ctx, cancel := withTimeout()
		defer cancel()
		quiz, err := env.client(*url).GetQuiz(ctx, id)
		if err != nil {
			if client.IsNotFound(err) {
				fmt.Fprintf(env.Stderr, "Quiz %s not found\n", id)
				return ExitError
			}
			printError(env.Stderr, err)
			return ExitError
		}
		fmt.Fprint(env.Stdout, viewer.RenderQuiz(quiz, viewer.Options{NoColor: env.NoColor}))
		return ExitOK
	}
}

func runDelete(cmd *Command) func(args []string, env *Env) int {
	return func(args []string, env *Env) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		url := flags.String("url", "", "API base URL")
		yes := flags.Bool("yes", false, "Skip the confirmation prompt")
		if ok, code := parseFlags(cmd, flags, args, env); !ok {
			return code
		}
		id, ok := quizIDArg(cmd, flags, env)
		if !ok {
			return ExitUsage
		}

		ctx, cancel := withTimeout()
		defer cancel()
		c := env.client(*url)

		if !*yes {
			quiz, err := c.GetQuiz(ctx, id)
			if err != nil {
				if client.IsNotFound(err) {
					fmt.Fprintf(env.Stderr, "Quiz %s not found\n", id)
					return ExitError
				}
				printError(env.Stderr, err)
				return ExitError
			}
			if !confirm(env, fmt.Sprintf("Delete quiz %q? [y/N] ", quiz.Title)) {
				fmt.Fprintln(env.Stdout, "Cancelled")
				return ExitOK
			}
		}

		if err := c.DeleteQuiz(ctx, id); err != nil {
			if client.IsNotFound(err) {
				fmt.Fprintf(env.Stderr, "Quiz %s not found\n", id)
				return ExitError
			}
			printError(env.Stderr, err)
			return ExitError
		}
		fmt.Fprintln(env.Stdout, "Quiz deleted successfully")
		return ExitOK
	}
}

func confirm(env *Env, prompt string) bool {
	fmt.Fprint(env.Stdout, prompt)
	line, _ := bufio.NewReader(env.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func runCreate(cmd *Command) func(args []string, env *Env) int {
	return func(args []string, env *Env) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		url := flags.String("url", "", "API base URL")
		file := flags.String("f", "", "YAML file with one quiz or a list of quizzes")
		if ok, code := parseFlags(cmd, flags, args, env); !ok {
			return code
		}
		if *file == "" {
			fmt.Fprintln(env.Stderr, "-f is required")
			printCommandUsage(cmd, env.Stderr)
			return ExitUsage
		}

		raw, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}
		reqs, err := dto.DecodeQuizzesYAML(raw)
		if err != nil {
			printError(env.Stderr, err)
			return ExitError
		}
		if len(reqs) == 0 {
			fmt.Fprintln(env.Stderr, "no quizzes in file")
			return ExitError
		}

		c := env.client(*url)
		for _, req := range reqs {
			form, err := authoring.FormFromRequest(req)
			if err != nil {
				printError(env.Stderr, err)
				return ExitError
			}
			ctx, cancel := withTimeout()
			quiz, err := form.Submit(ctx, c)
			cancel()
			if err != nil {
				printError(env.Stderr, err)
				return ExitError
			}
			fmt.Fprintf(env.Stdout, "Created %s  %s\n", quiz.ID, quiz.Title)
		}
		return ExitOK
	}
}

func runAuthor(cmd *Command) func(args []string, env *Env) int {
	return func(args []string, env *Env) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, env.Stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		url := flags.String("url", "", "API base URL")
		if ok, code := parseFlags(cmd, flags, args, env); !ok {
			return code
		}

		m := tui.NewModel(context.Background(), authoring.NewForm(), env.client(*url), tui.Options{NoColor: env.NoColor})
		final, err := tea.NewProgram(m, tea.WithInput(env.Stdin), tea.WithOutput(env.Stdout)).Run()
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitError
		}
		if done, ok := final.(tui.Model); ok && done.Created() != nil {
			fmt.Fprintf(env.Stdout, "Created %s  %s\n", done.Created().ID, done.Created().Title)
		}
		return ExitOK
	}
}
