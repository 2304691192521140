package util

import (
	"testing"
)

func TestFindFirst(t *testing.T) {
	tests := []struct {
		name      string
		slice     []int
		predicate func(int) bool
		expected  int
		found     bool
	}{
		{
			name:      "Element found",
			slice:     []int{1, 2, 3, 4, 5},
			predicate: func(x int) bool { return x%2 == 0 },
			expected:  2,
			found:     true,
		},
		{
			name:      "Element not found",
			slice:     []int{1, 3, 5, 7},
			predicate: func(x int) bool { return x%2 == 0 },
			expected:  0,
			found:     false,
		},
		{
			name:      "Empty slice",
			slice:     []int{},
			predicate: func(x int) bool { return x%2 == 0 },
			expected:  0,
			found:     false,
		},
		{
			name:      "First element matches",
			slice:     []int{10, 20, 30},
			predicate: func(x int) bool { return x == 10 },
			expected:  10,
			found:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, found := FindFirst(tt.slice, tt.predicate)
			if result != tt.expected || found != tt.found {
				t.Errorf("FindFirst() = (%v, %v), want (%v, %v)", result, found, tt.expected, tt.found)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name      string
		slice     []string
		predicate func(string) bool
		expected  []string
	}{
		{
			name:      "Keeps matching elements in order",
			slice:     []string{"watchme-a", "backup", "watchme-b"},
			predicate: func(s string) bool { return len(s) > 7 && s[:8] == "watchme-" },
			expected:  []string{"watchme-a", "watchme-b"},
		},
		{
			name:      "No matches",
			slice:     []string{"backup", "rotate"},
			predicate: func(s string) bool { return s == "watchme" },
			expected:  nil,
		},
		{
			name:      "Empty slice",
			slice:     []string{},
			predicate: func(s string) bool { return true },
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Filter(tt.slice, tt.predicate)
			if len(result) != len(tt.expected) {
				t.Fatalf("Filter() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("Filter()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}
