package clean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobclean/internal/config"
)

func TestStubSelects(t *testing.T) {
	d := NewStubDetector(config.Default())
	assert.True(t, d.Selects(strings.Repeat("a", 99)))
	assert.False(t, d.Selects(strings.Repeat("a", 100)))
	assert.True(t, d.Selects(strings.Repeat("é", 99)), "counts characters, not bytes")
}

func TestIsStub(t *testing.T) {
	tests := []struct {
		name  string
		title string
		desc  string
		want  bool
	}{
		{"description repeats title", "Accountant needed", "Accountant Needed", true},
		{"description starts with title", "Accountant", "Accountant needed urgently in Lae.", true},
		{"title starts with description", "Senior Finance Manager", "Senior Finance", true},
		{"filler template", "Driver", "Job opportunity at Acme Ltd. For full details see the website.", true},
		{"filler with other ending", "Driver", "Job opportunity at Acme Ltd.  Visit the listing", true},
		{"real content", "Driver", "Must hold a valid licence and five years experience.", false},
		{"opportunity without filler", "Driver", "Job opportunity at Acme Ltd. Must hold a licence.", false},
		{"empty title", "", "Short but real description.", false},
		{"empty description", "Driver", "", true},
	}
	d := NewStubDetector(config.Default())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, d.IsStub(tc.title, tc.desc))
		})
	}
}

func TestIsStubIgnoresEmptyTitle(t *testing.T) {
	d := NewStubDetector(config.Default())
	for _, title := range []string{"", "   "} {
		assert.False(t, d.IsStub(title, "Driver"), "blank title %q prefixes nothing", title)
		assert.False(t, d.IsStub(title, "Short but real description."))
		assert.True(t, d.IsStub(title, "Job opportunity at Acme Ltd. For full details see the website."),
			"filler is still a stub")
	}
}
