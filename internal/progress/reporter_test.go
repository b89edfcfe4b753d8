package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestLinesOutput(t *testing.T) {
	var buf bytes.Buffer
	l := &Lines{Out: &buf}
	l.Start(2)
	l.Step("a.md")
	l.Step("guide/b.md")
	l.Done(2, 0)

	out := buf.String()
	for _, want := range []string{
		"Exporting 2 files",
		"[1/2] a.md",
		"[2/2] guide/b.md",
		"Exported 2 files",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLinesReportsFailures(t *testing.T) {
	var buf bytes.Buffer
	l := &Lines{Out: &buf}
	l.Start(3)
	l.Done(2, 1)
	if !strings.Contains(buf.String(), "Exported 2 files, 1 failed") {
		t.Errorf("failure count not reported:\n%s", buf.String())
	}
}

func TestDetectQuiet(t *testing.T) {
	if _, ok := Detect(true).(Quiet); !ok {
		t.Error("quiet must win over environment detection")
	}
}

func TestDetectCI(t *testing.T) {
	t.Setenv("CI", "1")
	if _, ok := Detect(false).(*Lines); !ok {
		t.Error("CI environment must get line output")
	}
}
