package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Render writes r in the given format. An empty format means text.
func Render(w io.Writer, r *Result, format string) error {
	switch format {
	case "", FormatText:
		return RenderText(w, r)
	case FormatJSON:
		return RenderJSON(w, r)
	case FormatMarkdown:
		return RenderMarkdown(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderJSON writes r as indented JSON
func RenderJSON(w io.Writer, r interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// RenderText writes a terminal summary of r
func RenderText(w io.Writer, r *Result) error {
	b := &strings.Builder{}
	sel := r.Selection

	fmt.Fprintf(b, "Chain:    %s (%s)\n", r.ChainText, r.State.Chain)
	direction := "what I call them"
	if r.State.Reverse {
		direction = "what they call me"
	}
	fmt.Fprintf(b, "Asking:   %s, as %s\n", direction, r.State.Sex)
	fmt.Fprintf(b, "Concept:  %s\n", r.Resolution.ConceptID)
	fmt.Fprintf(b, "Dialect:  %s\n", r.State.DialectID)

	if sel.HasRecommendation() {
		fmt.Fprintf(b, "Say:      %s%s  [%s, %s confidence]\n",
			sel.Recommended, romanSuffix(r, sel.Recommended), sel.Provenance, sel.Confidence)
		if g := r.Glosses[sel.Recommended]; g != "" {
			fmt.Fprintf(b, "          %s\n", g)
		}
		if sel.CustomSourceDialectID != "" {
			fmt.Fprintf(b, "          pinned from %s\n", sel.CustomSourceDialectID)
		}
	} else {
		fmt.Fprintf(b, "Say:      (answer the questions below)\n")
	}
	if sel.StandardPreferred != "" && sel.StandardPreferred != sel.Recommended {
		fmt.Fprintf(b, "Mandarin: %s\n", sel.StandardPreferred)
	}

	if len(r.Acceptable) > 0 {
		b.WriteString("Also OK:\n")
		for _, t := range r.Acceptable {
			fmt.Fprintf(b, "  - %s%s", t, romanSuffix(r, t))
			if g := r.Glosses[t]; g != "" {
				fmt.Fprintf(b, "  %s", g)
			}
			b.WriteString("\n")
		}
	}

	if len(r.Questions) > 0 {
		b.WriteString("Questions:\n")
		for _, q := range r.Questions {
			if q.Resolved {
				fmt.Fprintf(b, "  [%s] %s -> %s (answered)\n", q.ID, q.Prompt, q.CurrentLabel)
				continue
			}
			fmt.Fprintf(b, "  [%s] %s\n", q.ID, q.Prompt)
			for i, opt := range q.Options {
				fmt.Fprintf(b, "      %d) %s\n", i, opt.Label)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderMarkdown writes r as a Markdown section
func RenderMarkdown(w io.Writer, r *Result) error {
	b := &strings.Builder{}
	sel := r.Selection

	fmt.Fprintf(b, "## %s\n\n", r.ChainText)
	fmt.Fprintf(b, "- **Chain:** `%s`\n", r.State.Chain)
	fmt.Fprintf(b, "- **Concept:** `%s`\n", r.Resolution.ConceptID)
	fmt.Fprintf(b, "- **Dialect:** %s\n", r.State.DialectID)
	fmt.Fprintf(b, "- **Reverse:** %t\n", r.State.Reverse)
	if sel.HasRecommendation() {
		fmt.Fprintf(b, "- **Recommended:** %s (%s, %s)\n", sel.Recommended, sel.Provenance, sel.Confidence)
	} else {
		fmt.Fprintf(b, "- **Recommended:** _needs answers_\n")
	}
	b.WriteString("\n")

	terms := displayedTerms(r)
	if len(terms) > 0 {
		b.WriteString("| Term | Romanization | Gloss |\n")
		b.WriteString("|------|--------------|-------|\n")
		for _, t := range terms {
			roman := ""
			if rom := r.Romanizations[t]; rom != nil {
				roman = rom.Text
				if rom.IsFallback {
					roman += " (Mandarin)"
				}
			}
			fmt.Fprintf(b, "| %s | %s | %s |\n", t, roman, escapePipes(r.Glosses[t]))
		}
		b.WriteString("\n")
	}

	open := 0
	for _, q := range r.Questions {
		if !q.Resolved {
			open++
		}
	}
	if open > 0 {
		b.WriteString("### Open questions\n\n")
		for _, q := range r.Questions {
			if q.Resolved {
				continue
			}
			fmt.Fprintf(b, "- `%s`: %s\n", q.ID, q.Prompt)
			for i, opt := range q.Options {
				fmt.Fprintf(b, "  %d. %s\n", i, opt.Label)
			}
		}
		b.WriteString("\n")
	}

	if r.Concept != nil {
		if v, ok := r.Concept.Variant(r.State.DialectID); ok && len(v.Sources) > 0 {
			b.WriteString("### Sources\n\n")
			for _, s := range v.Sources {
				fmt.Fprintf(b, "- [%s](%s), accessed %s\n", s.Title, s.URL, s.Accessed)
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func romanSuffix(r *Result, t string) string {
	rom := r.Romanizations[t]
	if rom == nil {
		return ""
	}
	if rom.IsFallback {
		return fmt.Sprintf(" (%s, Mandarin reading)", rom.Text)
	}
	return fmt.Sprintf(" (%s %s)", rom.SystemName, rom.Text)
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
