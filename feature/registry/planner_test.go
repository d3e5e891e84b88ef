package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanPages(t *testing.T) {
	tests := []struct {
		name          string
		totalReported int
		pageSize      int
		maxPages      int
		want          int
	}{
		{"Exact multiple", 400, 200, 50, 2},
		{"Rounds up", 401, 200, 50, 3},
		{"Single page", 5, 200, 50, 1},
		{"Zero total", 0, 200, 50, 0},
		{"Negative total", -7, 200, 50, 0},
		{"Cap applies", 100000, 200, 5, 5},
		{"Cap not reached", 900, 200, 50, 5},
		{"Zero page size", 400, 0, 50, 0},
		{"No cap", 1000, 100, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanPages(tt.totalReported, tt.pageSize, tt.maxPages))
		})
	}
}
