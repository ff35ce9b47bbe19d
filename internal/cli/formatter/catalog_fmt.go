package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadflow/internal/catalog"
)

// FormatCatalog lists every wave and its questions in traversal order.
func FormatCatalog(cat *catalog.Catalog) string {
	var b strings.Builder
	for i, w := range cat.Waves {
		if i > 0 {
			b.WriteString("\n")
		}
		title := fmt.Sprintf("%d. %s", i, w.Name)
		if i == catalog.ModeSelectionWave {
			title += " (routing)"
		}
		b.WriteString(Header(title) + "\n")
		if w.Description != "" {
			b.WriteString(Dim("  "+w.Description) + "\n")
		}
		for _, q := range w.Questions {
			fmt.Fprintf(&b, "  %s %s %s\n", StyleGreen.Render(q.ID), q.Text, questionTags(&q))
			for j, opt := range q.Options {
				fmt.Fprintf(&b, "      %s %s\n", Dim(fmt.Sprintf("%d.", j+1)), opt)
			}
		}
	}
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d discovery questions across %d waves",
		cat.DiscoveryQuestionCount(), cat.Len()-1)))
	return b.String()
}

func questionTags(q *catalog.Question) string {
	tags := []string{string(q.Type)}
	switch {
	case q.Rule != "":
		tags = append(tags, q.Rule)
	case !q.IsChoice():
		tags = append(tags, "optional")
	}
	return Dim("[" + strings.Join(tags, ", ") + "]")
}
