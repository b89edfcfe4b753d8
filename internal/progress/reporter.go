// Package progress reports batch-export feedback: an interactive bar on a
// terminal, plain lines when output is captured, nothing when quiet.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Reporter observes a batch of file exports.
type Reporter interface {
	Start(total int)
	Step(path string)
	Done(exported, failed int)
}

// Detect picks a reporter for the environment. Quiet wins; otherwise a bar
// when stderr is a terminal outside CI, line output when it is not.
func Detect(quiet bool) Reporter {
	if quiet {
		return Quiet{}
	}
	inCI := os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != ""
	if inCI || !isatty.IsTerminal(os.Stderr.Fd()) {
		return &Lines{Out: os.Stderr}
	}
	return &Bar{}
}

// Bar renders an interactive progress bar that names the file in flight.
type Bar struct {
	bar *progressbar.ProgressBar
}

func (b *Bar) Start(total int) {
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Exporting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (b *Bar) Step(path string) {
	if b.bar != nil {
		b.bar.Describe(path)
		_ = b.bar.Add(1)
	}
}

func (b *Bar) Done(exported, failed int) {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, exported+failed)
	}
}

// Lines prints one line per file, suitable for CI logs and redirected output.
type Lines struct {
	Out   io.Writer
	total int
	seen  int
}

func (l *Lines) Start(total int) {
	l.total = total
	l.seen = 0
	fmt.Fprintf(l.Out, "Exporting %d files\n", total)
}

func (l *Lines) Step(path string) {
	l.seen++
	fmt.Fprintf(l.Out, "[%d/%d] %s\n", l.seen, l.total, path)
}

func (l *Lines) Done(exported, failed int) {
	if failed > 0 {
		fmt.Fprintf(l.Out, "Exported %d files, %d failed\n", exported, failed)
		return
	}
	fmt.Fprintf(l.Out, "Exported %d files\n", exported)
}

// Quiet discards all progress.
type Quiet struct{}

func (Quiet) Start(int)     {}
func (Quiet) Step(string)   {}
func (Quiet) Done(int, int) {}
