package progress

import "testing"

func TestRollUp(t *testing.T) {
	tests := []struct {
		name          string
		done, total   int
		wantPct       float64
		wantCompleted bool
	}{
		{"no children", 0, 0, 0, false},
		{"none done", 0, 2, 0, false},
		{"half done", 1, 2, 50, false},
		{"one of three", 1, 3, 100.0 / 3.0, false},
		{"all done", 2, 2, 100, true},
		{"single child done", 1, 1, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, completed := rollUp(tt.done, tt.total)
			if pct != tt.wantPct {
				t.Errorf("rollUp(%d, %d) pct = %f, want %f", tt.done, tt.total, pct, tt.wantPct)
			}
			if completed != tt.wantCompleted {
				t.Errorf("rollUp(%d, %d) completed = %v, want %v", tt.done, tt.total, completed, tt.wantCompleted)
			}
		})
	}
}

func TestRollUpTwoTopicChapter(t *testing.T) {
	// A chapter with two topics: completing the first moves the chapter
	// to 50%, completing the second finishes it.
	pct, completed := rollUp(1, 2)
	if pct != 50 || completed {
		t.Fatalf("after first topic: pct = %f, completed = %v", pct, completed)
	}

	pct, completed = rollUp(2, 2)
	if pct != 100 || !completed {
		t.Fatalf("after second topic: pct = %f, completed = %v", pct, completed)
	}
}
