package feature

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Set
	}{
		{"plain prose", "# Title\n\njust words\n", Set{}},
		{"mermaid fence", "```mermaid\ngraph TD\nA-->B\n```", Set{Mermaid: true}},
		{"plain fence", "```go\nfmt.Println()\n```", Set{}},
		{"dollar math", "price is $5", Set{Math: true}},
		{"display math", `\[ x^2 \]`, Set{Math: true}},
		{"inline math", `\( e^{i\pi} \)`, Set{Math: true}},
		{"both", "```mermaid\n```\n$$x$$", Set{Mermaid: true, Math: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectStateless(t *testing.T) {
	// Detection is a pure function of the current text: adding math flips the
	// flag on, removing it flips it back off.
	base := "# Doc\n\nplain\n"
	if Detect(base).Math {
		t.Fatal("base document should not need math")
	}
	withMath := base + "\n$E = mc^2$\n"
	if !Detect(withMath).Math {
		t.Fatal("appending math syntax should flip the flag on")
	}
	if Detect(base).Math {
		t.Fatal("re-scanning the original text should not be sticky")
	}
}
