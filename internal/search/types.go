package search

import "fmt"

// Result is a single ranked hit. Target is a URL for web results and a
// file path for local results.
type Result struct {
	Target string
	Score  float64
}

// NoLocalMatches is the placeholder shown when the scanner finds nothing.
const NoLocalMatches = "No matching local files found."

// Outcome is the result of one search: either a list of results or the
// error that prevented producing one.
type Outcome struct {
	Results []Result
	Err     error
}

// Succeeded wraps results in a successful Outcome.
func Succeeded(results []Result) Outcome {
	return Outcome{Results: results}
}

// Failed wraps err in a failed Outcome.
func Failed(err error) Outcome {
	return Outcome{Err: err}
}

// OK reports whether the search succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Display returns the list shown to the user. A failure becomes a single
// "Error: <message>" entry with score 0.
func (o Outcome) Display() []Result {
	if o.Err != nil {
		return []Result{{Target: fmt.Sprintf("Error: %v", o.Err), Score: 0}}
	}
	return o.Results
}
