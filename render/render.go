package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/lexica/match"
	"github.com/revelaction/lexica/search"
)

const (
	Defaultformat = "all"
)

var (
	Bold = "\033[1m"
	Off  = "\033[0m"
)

// Output renders lookup results.
type Output interface {
	Words(term string, words []string) error
	Verses(word string, hits []search.Hit) error
}

var _ Output = (*Renderer)(nil)

func SupportedFormats() []string {
	return []string{"all", "ref"}
}

type Renderer struct {
	Out io.Writer

	HasColor bool

	// HasPrefix prints the verse reference on its own line before the verse
	// text, and the result headers.
	HasPrefix bool

	// Format determines what is printed for each verse
	//
	// all: reference (if HasPrefix) and highlighted text
	// ref: only the reference
	Format string
}

func NewRenderer() *Renderer {
	return &Renderer{
		Out:       os.Stdout,
		HasColor:  true,
		HasPrefix: true,
		Format:    Defaultformat,
	}
}

// Marker returns the highlight marker for the current color setting.
func (r *Renderer) Marker() match.Marker {
	if !r.HasColor {
		return match.None
	}
	return match.ANSI
}

// Words prints the word forms with the matched part of each highlighted.
func (r *Renderer) Words(term string, words []string) error {
	if len(words) == 0 {
		_, err := fmt.Fprintf(r.Out, "\nNo matches found for '%s'.\n", term)
		return err
	}

	var b strings.Builder
	if r.HasPrefix {
		fmt.Fprintf(&b, "\nWords matching '%s':\n\n", term)
	}

	mk := r.Marker()
	for _, w := range words {
		fmt.Fprintf(&b, "  - %s\n", match.Highlight(w, term, mk))
	}

	_, err := io.WriteString(r.Out, b.String())
	return err
}

// Verses prints the verses with every occurrence of the word highlighted.
func (r *Renderer) Verses(word string, hits []search.Hit) error {
	if len(hits) == 0 {
		_, err := fmt.Fprintf(r.Out, "\nNo verses found containing '%s'.\n", word)
		return err
	}

	var b strings.Builder
	if r.HasPrefix {
		fmt.Fprintf(&b, "\nFound %d verse(s) containing '%s':\n\n", len(hits), word)
	}

	mk := r.Marker()
	for _, h := range hits {
		switch r.Format {
		case "ref":
			fmt.Fprintf(&b, "%s\n", r.ref(h.Ref))
		default:
			text := strings.ReplaceAll(match.Apply(h.Text, h.Spans, mk), "\n", " ")
			if r.HasPrefix {
				fmt.Fprintf(&b, "%s\n    %s\n\n", r.ref(h.Ref), text)
				continue
			}
			fmt.Fprintf(&b, "%s\n", text)
		}
	}

	_, err := io.WriteString(r.Out, b.String())
	return err
}

func (r *Renderer) ref(ref string) string {
	if !r.HasColor {
		return ref
	}
	return Bold + ref + Off
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			switch i {
			case len(supported) - 1:
				r.Format = supported[0]
			default:
				r.Format = supported[i+1]
			}

			return
		}
	}

	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}
