package export

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jonathan/cv-builder/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromeCollaborator_AllocatorOptions(t *testing.T) {
	c := NewChromeCollaborator("/opt/chrome", false)
	assert.Greater(t, len(c.allocatorOptions()), 4)
}

func TestChromeCollaborator_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if os.Getenv("CHROME_PATH") == "" {
		t.Skip("CHROME_PATH not set, skipping browser test")
	}

	p := NewPipeline(NewChromeCollaborator("", false), DefaultConfig(),
		WithTimeout(90*time.Second),
		WithPageCounter(pagination.CountPages),
	)
	out := p.Export(context.Background(), Job{Tree: sampleTree(), Title: "Jane Doe"})

	require.True(t, out.OK(), "export failed: %v", out.Err)
	assert.GreaterOrEqual(t, out.Pages, 1)
}
