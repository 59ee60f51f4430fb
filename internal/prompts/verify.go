package prompts

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"intentforge/internal/models"
)

// requiredSections are the level-2 headings a grounding document must carry.
var requiredSections = []string{"Intent actions", "Task ledger", "Output format"}

// VerifyDoc checks a grounding document for the structure generation relies
// on: a top-level title, the required sections, a fenced json example of the
// ledger, and a mention of every action kind. Content beyond that is free
// form.
func VerifyDoc(source []byte) error {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	hasTitle := false
	hasJSONFence := false
	sections := map[string]bool{}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			switch v.Level {
			case 1:
				hasTitle = true
			case 2:
				sections[strings.ToLower(headingText(v, source))] = true
			}
		case *ast.FencedCodeBlock:
			if strings.EqualFold(string(v.Language(source)), "json") {
				hasJSONFence = true
			}
		}
		return ast.WalkContinue, nil
	})

	var missing []string
	if !hasTitle {
		missing = append(missing, "a top-level title")
	}
	for _, s := range requiredSections {
		if !sections[strings.ToLower(s)] {
			missing = append(missing, fmt.Sprintf("section %q", s))
		}
	}
	if !hasJSONFence {
		missing = append(missing, "a fenced json ledger example")
	}
	for _, a := range models.Actions() {
		if !strings.Contains(string(source), string(a)) {
			missing = append(missing, fmt.Sprintf("a description of %s", a))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, "; "))
	}
	return nil
}

// headingText concatenates the literal text children of a heading node.
func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
	}
	return strings.TrimSpace(b.String())
}
