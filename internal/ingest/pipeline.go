package ingest

import "fmt"

// Phase is the pipeline state.
type Phase int

const (
	Idle Phase = iota
	FileChosen
	TextStaged
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FileChosen:
		return "reading"
	case TextStaged:
		return "staged"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// StagedFile is extracted text waiting to be ingested.
type StagedFile struct {
	Path        string
	Name        string // base name, sent as the chunk source
	ContentType string
	Text        string
	Pages       int // zero for non-PDF input
}

// Pipeline tracks one upload from file choice to ingest. The zero value is
// Idle. Transitions that do not apply to the current phase return an error
// and change nothing.
type Pipeline struct {
	phase  Phase
	path   string
	staged *StagedFile
	stale  bool
}

// Phase returns the current phase.
func (p *Pipeline) Phase() Phase { return p.phase }

// Staged returns the staged file, or nil outside TextStaged/Submitting.
func (p *Pipeline) Staged() *StagedFile { return p.staged }

// Stale reports whether the staged file changed on disk after staging.
func (p *Pipeline) Stale() bool { return p.stale }

// ChooserVisible reports whether the file chooser should be shown.
func (p *Pipeline) ChooserVisible() bool {
	return p.phase == Idle || p.phase == FileChosen
}

// ResetVisible reports whether the reset control should be shown.
func (p *Pipeline) ResetVisible() bool {
	return p.phase == TextStaged
}

// Choose records the selected path and starts extraction.
func (p *Pipeline) Choose(path string) error {
	if p.phase != Idle {
		return fmt.Errorf("cannot choose a file while %s", p.phase)
	}
	p.phase = FileChosen
	p.path = path
	return nil
}

// Stage completes extraction for the chosen path. A result for any other
// path is ignored, since the user may have reset and chosen again.
func (p *Pipeline) Stage(file *StagedFile) error {
	if p.phase != FileChosen || file == nil || file.Path != p.path {
		return fmt.Errorf("no extraction pending for %v", file)
	}
	p.phase = TextStaged
	p.staged = file
	p.stale = false
	return nil
}

// ExtractFailed returns a chosen file to Idle.
func (p *Pipeline) ExtractFailed(path string) {
	if p.phase == FileChosen && path == p.path {
		p.phase = Idle
		p.path = ""
	}
}

// MarkStale flags the staged text as out of date with the file on disk.
func (p *Pipeline) MarkStale(path string) {
	if p.staged != nil && p.staged.Path == path {
		p.stale = true
	}
}

// Reset clears staged text and shows the chooser again.
func (p *Pipeline) Reset() {
	if p.phase == Submitting {
		return
	}
	*p = Pipeline{}
}

// BeginSubmit moves staged text into submission.
func (p *Pipeline) BeginSubmit() (*StagedFile, error) {
	if p.phase != TextStaged {
		return nil, fmt.Errorf("nothing staged to ingest")
	}
	p.phase = Submitting
	return p.staged, nil
}

// SubmitFailed keeps the staged text for another attempt.
func (p *Pipeline) SubmitFailed() {
	if p.phase == Submitting {
		p.phase = TextStaged
	}
}

// SubmitSucceeded clears the pipeline.
func (p *Pipeline) SubmitSucceeded() {
	if p.phase == Submitting {
		*p = Pipeline{}
	}
}
