package views

import (
	"context"
	"fmt"
	"strings"

	"photocat/internal/adapters/report"
	"photocat/internal/application"
	"photocat/internal/application/commands"
	"photocat/internal/ports"
)

// Action is what the shell does after a command besides printing
type Action int

const (
	ActionNone Action = iota
	ActionHelp
	ActionExit
	ActionClear
	ActionSearch
)

// Outcome is the result of one command line
type Outcome struct {
	Output string
	Err    error
	Action Action
}

// Interpreter runs shell command lines against a session
type Interpreter struct {
	session   *application.Session
	opener    ports.FileOpener
	clipboard ports.Clipboard
}

// NewInterpreter creates a new Interpreter. The opener and clipboard may be nil.
func NewInterpreter(session *application.Session, opener ports.FileOpener, clipboard ports.Clipboard) *Interpreter {
	return &Interpreter{
		session:   session,
		opener:    opener,
		clipboard: clipboard,
	}
}

// About describes the program
const About = `photocat catalogs image files: where they are, when they were taken,
their size, content checksum and metadata. Files can be tagged with keywords,
and files with identical content are detected as duplicates.`

// Run executes one command line. Command words are case-insensitive.
func (i *Interpreter) Run(ctx context.Context, line string) Outcome {
	args := application.Tokenize(line)
	if len(args) == 0 {
		return Outcome{}
	}
	first := args[0]
	word, args := strings.ToUpper(first), args[1:]

	switch word {
	case "H", "HELP":
		return Outcome{Action: ActionHelp}
	case "AB", "ABOUT":
		return Outcome{Output: About}
	case "E", "X", "EXIT":
		return Outcome{Action: ActionExit}
	case "CLEAR", "CLS":
		return Outcome{Action: ActionClear}
	case "SAVE":
		res, err := commands.NewSaveCommand(i.session).Execute(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Output: res.Message}
	case "A", "ADD":
		return i.add(ctx, args)
	case "AK":
		if len(args) != 2 {
			return usage(word, "AK <keyword> <target>")
		}
		res, err := commands.NewAddKeywordCommand(i.session, args[0], args[1]).Execute(ctx)
		return message(res, err)
	case "R", "REMOVE":
		if len(args) != 1 {
			return usage(word, "REMOVE <target>")
		}
		res, err := commands.NewRemoveCommand(i.session, args[0]).Execute(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Output: res.Message}
	case "RK":
		if len(args) != 2 {
			return usage(word, "RK <keyword> <target>")
		}
		res, err := commands.NewRemoveKeywordCommand(i.session, args[0], args[1]).Execute(ctx)
		return message(res, err)
	case "L", "LIST":
		return i.list(ctx, args)
	case "D", "DETAILS":
		if len(args) != 1 {
			return usage(word, "DETAILS <target>")
		}
		found, err := commands.NewDetailsCommand(i.session, args[0]).Execute(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		var sb strings.Builder
		for _, e := range found {
			sb.WriteString(report.Details(e))
		}
		return Outcome{Output: strings.TrimRight(sb.String(), "\n")}
	case "DUP", "DD", "DUPLICATES":
		if len(args) > 1 {
			return usage(word, "DUPLICATES [target]")
		}
		res, err := commands.NewDuplicatesCommand(i.session, optional(args)).Execute(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Output: strings.TrimRight(report.Duplicates(res, i.session.Catalog()), "\n")}
	case "S", "SCAN":
		if len(args) > 1 {
			return usage(word, "SCAN [target]")
		}
		res, err := commands.NewScanCommand(i.session, optional(args)).Execute(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Output: strings.TrimRight(report.Scan(res), "\n")}
	case "F", "FIND", "SEARCH":
		if len(args) == 0 {
			return Outcome{Action: ActionSearch}
		}
		results, err := commands.NewSearchCommand(i.session, strings.Join(args, " ")).Execute(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Output: strings.TrimRight(report.Search(results), "\n")}
	case "STATS":
		stats, err := commands.NewStatsCommand(i.session).Execute(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Output: strings.TrimRight(report.Stats(stats), "\n")}
	case "CHECK":
		res, err := commands.NewCheckCommand(i.session).Execute(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		if !res.OK {
			return Outcome{Err: fmt.Errorf("%s", res.Message)}
		}
		return Outcome{Output: res.Message}
	case "O", "OPEN":
		if len(args) != 1 {
			return usage(word, "OPEN <target>")
		}
		if i.opener == nil {
			return Outcome{Err: fmt.Errorf("no viewer configured")}
		}
		path, err := commands.NewOpenCommand(i.session, i.opener, args[0]).Execute(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Output: "Opened " + path}
	case "C", "COPY":
		if len(args) != 1 {
			return usage(word, "COPY <target>")
		}
		if i.clipboard == nil {
			return Outcome{Err: fmt.Errorf("clipboard not available")}
		}
		path, err := commands.NewCopyCommand(i.session, i.clipboard, args[0]).Execute(ctx)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Output: "Copied " + path}
	}

	return Outcome{Err: fmt.Errorf("%w: %s (type HELP for a list of commands)", application.ErrUnknownCommand, first)}
}

func (i *Interpreter) add(ctx context.Context, args []string) Outcome {
	recursive := false
	var rest []string
	for _, a := range args {
		switch a {
		case "-r", "--recursive":
			recursive = true
		default:
			rest = append(rest, a)
		}
	}
	if len(rest) != 1 {
		return usage("ADD", "ADD <path> [-r]")
	}

	res, err := commands.NewAddCommand(i.session, rest[0], recursive).Execute(ctx)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Output: strings.TrimRight(report.Add(res), "\n")}
}

// list accepts no argument, a subject (dirs, keywords, duplicates,
// potential or a target), or an index name followed by a key
func (i *Interpreter) list(ctx context.Context, args []string) Outcome {
	var subject, by string
	switch len(args) {
	case 0:
	case 1:
		subject = args[0]
	case 2:
		by, subject = args[0], args[1]
	default:
		return usage("LIST", "LIST [dirs|keywords|duplicates|potential|<target>] or LIST <index> <key>")
	}

	res, err := commands.NewListCommand(i.session, subject, by).Execute(ctx)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Output: strings.TrimRight(report.List(res), "\n")}
}

func message(res *commands.KeywordResult, err error) Outcome {
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Output: res.Message}
}

func usage(command, text string) Outcome {
	return Outcome{Err: &application.ArgumentError{Command: strings.ToUpper(command), Usage: text}}
}

func optional(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
