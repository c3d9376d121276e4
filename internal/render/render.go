// Package render prints search results and session messages to a terminal
// with color cues.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/f4ah6o/hypersearch-go/internal/popularity"
	"github.com/f4ah6o/hypersearch-go/internal/search"
	"github.com/fatih/color"
)

const (
	// WebTitle heads the web result list.
	WebTitle = "🌐 Web Results"
	// LocalTitle heads the local file list.
	LocalTitle = "💾 Local Files"

	spinnerFrames = "/—\\|"
	spinnerCycles = 5
	frameDelay    = 100 * time.Millisecond
)

// Options configures a Renderer.
type Options struct {
	// Color enables ANSI colors. Colors are still dropped when the output is
	// not a terminal.
	Color bool
	// Animation enables the loading spinner shown before each search.
	Animation bool
}

// Renderer writes user-facing output.
type Renderer struct {
	out       io.Writer
	animation bool

	title     *color.Color
	banner    *color.Color
	hint      *color.Color
	index     *color.Color
	high      *color.Color
	normal    *color.Color
	failure   *color.Color
	success   *color.Color
	plain     *color.Color
	highlight *color.Color
}

// New creates a Renderer writing to out.
func New(out io.Writer, opts Options) *Renderer {
	r := &Renderer{
		out:       out,
		animation: opts.Animation,
		title:     color.New(color.FgCyan, color.Bold),
		banner:    color.New(color.FgBlue, color.Bold),
		hint:      color.New(color.FgYellow),
		index:     color.New(color.FgMagenta),
		high:      color.New(color.FgGreen),
		normal:    color.New(color.FgYellow),
		failure:   color.New(color.FgRed),
		success:   color.New(color.FgGreen),
		plain:     color.New(color.FgWhite),
		highlight: color.New(color.FgBlue),
	}
	if !opts.Color {
		for _, c := range []*color.Color{r.title, r.banner, r.hint, r.index, r.high, r.normal, r.failure, r.success, r.plain, r.highlight} {
			c.DisableColor()
		}
	}
	return r
}

// FormatScore prints a score in its shortest decimal form.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// Results prints a titled, numbered list. Scores above 1 are highlighted.
func (r *Renderer) Results(results []search.Result, title string) {
	fmt.Fprintln(r.out)
	r.title.Fprintln(r.out, title)
	if len(results) == 0 {
		r.failure.Fprintln(r.out, "No results found.")
		return
	}
	for i, res := range results {
		c := r.normal
		if res.Score > 1 {
			c = r.high
		}
		r.index.Fprintf(r.out, "%d. ", i+1)
		c.Fprint(r.out, res.Target)
		fmt.Fprintf(r.out, " (Score: %s)\n", FormatScore(res.Score))
	}
}

// Welcome prints the banner and the command hint.
func (r *Renderer) Welcome() {
	r.banner.Fprintln(r.out, "🚀 Welcome to HyperSearch - The Ultimate CLI Search Engine! 🚀")
	r.hint.Fprintln(r.out, "Type 'exit' to quit or 'save' to save last results.")
}

// Prompt asks for the next query.
func (r *Renderer) Prompt() {
	fmt.Fprintln(r.out)
	r.success.Fprint(r.out, "🔍 Enter search query: ")
}

// Description prints the "About" block for query.
func (r *Renderer) Description(query, text string) {
	fmt.Fprintln(r.out)
	r.banner.Fprintf(r.out, "📜 About '%s':\n", query)
	r.plain.Fprintln(r.out, text)
}

// InvalidQuery reports a blank query.
func (r *Renderer) InvalidQuery() {
	r.failure.Fprintln(r.out, "❌ Please enter a valid query.")
}

// Saved reports the file the results were written to.
func (r *Renderer) Saved(filename string) {
	r.success.Fprintf(r.out, "Results saved to %s\n", filename)
}

// Goodbye prints the farewell message.
func (r *Renderer) Goodbye() {
	r.highlight.Fprintln(r.out, "👋 Goodbye!")
}

// Popular prints the popularity table.
func (r *Renderer) Popular(entries []popularity.Entry) {
	r.title.Fprintln(r.out, "Popular sites (monthly visits)")
	for i, e := range entries {
		r.index.Fprintf(r.out, "%2d. ", i+1)
		fmt.Fprintf(r.out, "%-15s %s\n", e.Domain, FormatScore(e.MonthlyVisits))
	}
}

// Loading draws a short spinner next to text and erases it afterwards.
func (r *Renderer) Loading(text string) {
	if !r.animation {
		return
	}
	for i := 0; i < spinnerCycles; i++ {
		for _, frame := range spinnerFrames {
			fmt.Fprintf(r.out, "\r%s %c", text, frame)
			time.Sleep(frameDelay)
		}
	}
	fmt.Fprint(r.out, "\r"+strings.Repeat(" ", len(text)+2)+"\r")
}
