package query

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/lexica/render"
	"github.com/revelaction/lexica/search"
)

const (
	// completionThreshold is the minimum number of characters before the
	// prompt suggests word forms
	completionThreshold = 2

	quit = "quit"
)

type Handler struct {
	Search   *search.Search
	Renderer *render.Renderer
	Out      io.Writer
}

func NewHandler(s *search.Search, r *render.Renderer) *Handler {
	return &Handler{
		Search:   s,
		Renderer: r,
		Out:      os.Stdout,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      📜 ", h.completer,
			prompt.OptionTitle("lexica query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(uint16(h.Search.Limit())),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintln(h.Out, "Prefix set to "+fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		done, err := h.Eval(in)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if word := strings.TrimSpace(in); word != "" {
			history = append(history, word)
		}
	}
}

// Eval runs the verse search for one line of input. It reports done when the
// input asks to leave the prompt. Lookup errors are only printed: the prompt
// keeps running.
func (h *Handler) Eval(in string) (done bool, err error) {
	word := strings.TrimSpace(in)
	if word == quit {
		return true, nil
	}

	if word == "" {
		return false, nil
	}

	hits, err := h.Search.Verses(word)
	if err != nil {
		fmt.Fprintf(h.Out, "Error searching verses: %v\n", err)
		return false, nil
	}

	return false, h.Renderer.Verses(word, hits)
}

// completer suggests the normalized forms, which Eval searches exactly, with
// the matching surface forms as description.
func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{}

	word := in.GetWordBeforeCursor()
	if utf8.RuneCountInString(word) < completionThreshold {
		return s
	}

	forms, err := h.Search.Forms(word)
	if err != nil {
		return s
	}

	index := map[string]int{}
	for _, f := range forms {
		if i, ok := index[f.Normalized]; ok {
			s[i].Description += ", " + f.Text
			continue
		}
		index[f.Normalized] = len(s)
		s = append(s, prompt.Suggest{Text: f.Normalized, Description: f.Text})
	}

	return s
}
