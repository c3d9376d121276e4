// Package session runs the interactive prompt: it reads commands and
// queries, runs the searches and keeps the last web results for saving.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/f4ah6o/hypersearch-go/internal/describe"
	"github.com/f4ah6o/hypersearch-go/internal/render"
	"github.com/f4ah6o/hypersearch-go/internal/search"
	"github.com/sirupsen/logrus"
)

// Command is the kind of a line typed at the prompt.
type Command int

const (
	// CommandQuery runs a search.
	CommandQuery Command = iota
	// CommandExit ends the session.
	CommandExit
	// CommandSave writes the last web results to a file.
	CommandSave
	// CommandEmpty is a blank line.
	CommandEmpty
)

// Classify maps an input line to a Command. exit and save are matched
// case-insensitively; any line with non-space text is a query.
func Classify(line string) Command {
	switch strings.ToLower(line) {
	case "exit":
		return CommandExit
	case "save":
		return CommandSave
	}
	if strings.TrimSpace(line) == "" {
		return CommandEmpty
	}
	return CommandQuery
}

// State is what the session remembers between queries.
type State struct {
	LastQuery   string
	LastResults []search.Result
}

// CanSave reports whether there is anything to save.
func (s State) CanSave() bool {
	return len(s.LastResults) > 0
}

// WebSearcher ranks web results for a query.
type WebSearcher interface {
	Rank(ctx context.Context, query string, maxResults int) search.Outcome
}

// LocalSearcher scans a directory for matching files.
type LocalSearcher interface {
	Scan(query, root string) search.Outcome
}

// Saver persists results and returns where they went.
type Saver interface {
	Save(results []search.Result, query string) (string, error)
}

// Options configures a Loop.
type Options struct {
	// MaxResults is the number of web results per query.
	MaxResults int
	// Root is the directory scanned for local files.
	Root string
}

// Loop is a single interactive session.
type Loop struct {
	in    *bufio.Reader
	ui    *render.Renderer
	web   WebSearcher
	local LocalSearcher
	saver Saver

	maxResults int
	root       string
}

// New creates a Loop reading lines from in.
func New(in io.Reader, ui *render.Renderer, web WebSearcher, local LocalSearcher, saver Saver, opts Options) *Loop {
	if opts.MaxResults <= 0 {
		opts.MaxResults = search.DefaultWebResults
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	return &Loop{
		in:         bufio.NewReader(in),
		ui:         ui,
		web:        web,
		local:      local,
		saver:      saver,
		maxResults: opts.MaxResults,
		root:       opts.Root,
	}
}

// Run prompts until exit, end of input or ctx cancellation. It returns an
// error only when saving results fails or the input cannot be read.
func (l *Loop) Run(ctx context.Context) error {
	l.ui.Welcome()

	var state State
	for {
		if err := ctx.Err(); err != nil {
			logrus.WithError(err).Debug("Session cancelled")
			return nil
		}

		l.ui.Prompt()
		line, err := l.readLine()
		if errors.Is(err, io.EOF) {
			l.ui.Goodbye()
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		next, done, err := l.handle(ctx, line, state)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		state = next
	}
}

// readLine returns the next input line without its line ending. Lines have
// no length limit. A final line without a newline is still returned; io.EOF
// is reported only once nothing is left.
func (l *Loop) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// handle processes one input line against state and returns the new state.
func (l *Loop) handle(ctx context.Context, line string, state State) (State, bool, error) {
	switch Classify(line) {
	case CommandExit:
		l.ui.Goodbye()
		return state, true, nil

	case CommandSave:
		if !state.CanSave() {
			logrus.Debug("Nothing to save yet")
			return state, false, nil
		}
		filename, err := l.saver.Save(state.LastResults, state.LastQuery)
		if err != nil {
			return state, false, err
		}
		l.ui.Saved(filename)
		return state, false, nil

	case CommandEmpty:
		l.ui.InvalidQuery()
		return state, false, nil
	}

	return l.query(ctx, line), false, nil
}

// query runs both searches for q and returns the state to keep. Only the
// web results are remembered.
func (l *Loop) query(ctx context.Context, q string) State {
	log := logrus.WithField("query", q)

	l.ui.Description(q, describe.Describe(q))

	l.ui.Loading("Fetching web results")
	web := l.web.Rank(ctx, q, l.maxResults)
	if !web.OK() {
		log.WithError(web.Err).Debug("Web search returned an error")
	}
	webResults := web.Display()
	l.ui.Results(webResults, render.WebTitle)

	l.ui.Loading("Scanning local files")
	local := l.local.Scan(q, l.root)
	if !local.OK() {
		log.WithError(local.Err).Warn("Local scan failed")
	}
	l.ui.Results(local.Display(), render.LocalTitle)

	return State{LastQuery: q, LastResults: webResults}
}
