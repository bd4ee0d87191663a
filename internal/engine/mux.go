package engine

import "strings"

// OutputKind tags an OutputItem variant.
type OutputKind int

const (
	// ItemSourceEcho is echoed chunk source.
	ItemSourceEcho OutputKind = iota
	// ItemTextOutput is textual output produced by execution.
	ItemTextOutput
	// ItemGraphic is a persisted graphic artifact.
	ItemGraphic
	// ItemError is a captured failure message.
	ItemError
)

// OutputItem is one record in the final ordered output sequence.
type OutputItem struct {
	Kind     OutputKind
	Text     string
	Artifact Artifact
}

// OutputMultiplexer folds per-unit execution results into the final
// ordered output sequence, honoring echo/include/results policy, hold-mode
// buffering and the error-abort bailout.
type OutputMultiplexer struct {
	lines []string
	src   string
	opts  ChunkOptions

	pendingSourceIndex int
	outputs            []OutputItem
	held               []OutputItem
	bailed             bool
}

// NewOutputMultiplexer starts a multiplexer over one chunk's source.
func NewOutputMultiplexer(src string, opts ChunkOptions) *OutputMultiplexer {
	return &OutputMultiplexer{
		lines:              sourceLines(src),
		src:                src,
		opts:               opts,
		pendingSourceIndex: 1,
	}
}

// Fold consumes one unit's result and queued graphics. It returns true
// when processing must stop (error-abort bailout). Units with no
// observable output are skipped entirely and do not advance the echo
// position.
func (m *OutputMultiplexer) Fold(unit SourceUnit, r ExecutionResult, graphics []Artifact) bool {
	if r.Text == "" && !r.IsError && len(graphics) == 0 {
		return false
	}

	if m.opts.Echo && m.opts.Results != ResultsHold {
		m.echoRange(m.pendingSourceIndex, unit.EndLine)
		m.pendingSourceIndex = unit.EndLine + 1
	}

	abort := m.opts.Error == ErrorAbort && r.IsError

	if m.opts.Include {
		dst := &m.outputs
		if m.opts.Results == ResultsHold && !abort {
			dst = &m.held
		}
		if r.Text != "" {
			*dst = append(*dst, OutputItem{Kind: ItemTextOutput, Text: r.Text})
		}
		for _, g := range graphics {
			*dst = append(*dst, OutputItem{Kind: ItemGraphic, Artifact: g})
		}
		if r.IsError {
			// The error output is always the final item before stopping.
			*dst = append(*dst, OutputItem{Kind: ItemError, Text: r.Message})
		}
	}

	if abort {
		m.bailed = true
		return true
	}
	return false
}

// Finalize emits the leftover echo, or in hold mode the single
// whole-source echo followed by the held outputs with consecutive text
// runs merged. An error bailout suppresses finalization entirely.
func (m *OutputMultiplexer) Finalize() {
	if m.bailed {
		return
	}
	if m.opts.Results == ResultsHold {
		if m.opts.Echo {
			m.outputs = append(m.outputs, OutputItem{Kind: ItemSourceEcho, Text: m.src})
		}
		m.outputs = append(m.outputs, mergeText(m.held)...)
		m.held = nil
		return
	}
	if m.opts.Echo && m.pendingSourceIndex <= len(m.lines) {
		m.echoRange(m.pendingSourceIndex, len(m.lines))
		m.pendingSourceIndex = len(m.lines) + 1
	}
}

// Outputs returns the assembled sequence. Call after Finalize.
func (m *OutputMultiplexer) Outputs() []OutputItem {
	return m.outputs
}

func (m *OutputMultiplexer) echoRange(from, to int) {
	if from > to {
		return
	}
	m.outputs = append(m.outputs, OutputItem{
		Kind: ItemSourceEcho,
		Text: strings.Join(m.lines[from-1:to], "\n"),
	})
}

// mergeText concatenates consecutive text items into single blocks while
// leaving graphics and errors as individual interleaved items, preserving
// production order. A trailing text run is flushed as well.
func mergeText(items []OutputItem) []OutputItem {
	var out []OutputItem
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			out = append(out, OutputItem{Kind: ItemTextOutput, Text: run.String()})
			run.Reset()
		}
	}
	for _, it := range items {
		if it.Kind == ItemTextOutput {
			run.WriteString(it.Text)
			continue
		}
		flush()
		out = append(out, it)
	}
	flush()
	return out
}
