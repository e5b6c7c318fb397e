package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/kingdomgen/pkg/selection"
)

// RenderWhy renders the "--why" trace: every chosen pile with its recorded
// tags (the <why?...> markers the build engine and standard actions leave
// behind), followed by the recorded notes and required items.
func RenderWhy(sel *selection.Selection) string {
	var sb strings.Builder
	for _, p := range sel.Piles() {
		tags := sel.Tags(p.Name)
		if len(tags) == 0 {
			fmt.Fprintf(&sb, "%s\n", p.Name)
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", p.Name, strings.Join(tags, ", "))
	}

	notes := sel.Notes()
	sort.Strings(notes)
	if len(notes) > 0 {
		fmt.Fprintf(&sb, "notes: %s\n", strings.Join(notes, ", "))
	}

	items := sel.Items()
	sort.Strings(items)
	if len(items) > 0 {
		fmt.Fprintf(&sb, "items: %s\n", strings.Join(items, ", "))
	}

	return sb.String()
}
