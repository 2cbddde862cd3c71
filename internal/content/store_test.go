package content

import (
	"strings"
	"testing"
)

func TestListQueriesBreakOrderTies(t *testing.T) {
	// Rows sharing a display_order (seed data defaults to 0) must come
	// back in insertion order on every request, so each listing query
	// orders by the serial key after display_order.
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"chapters", listChaptersQuery, "ORDER BY c.display_order, c.id"},
		{"topics", listTopicsQuery, "ORDER BY t.display_order, t.id"},
		{"subtopics", listSubtopicsQuery, "ORDER BY st.display_order, st.id"},
		{"cards", listCardsQuery, "ORDER BY display_order, id"},
	}

	for _, tt := range tests {
		if !strings.Contains(tt.query, tt.want) {
			t.Errorf("%s query is missing the stable ordering %q", tt.name, tt.want)
		}
	}
}
