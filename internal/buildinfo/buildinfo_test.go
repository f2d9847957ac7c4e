package buildinfo

import (
	"testing"

	"github.com/flarebyte/irshim/cli"
	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	oldCliV, oldCliD := cli.Version, cli.Date
	t.Cleanup(func() {
		Version, Commit, Date = oldV, oldC, oldD
		cli.Version, cli.Date = oldCliV, oldCliD
	})

	Version, Commit, Date = "", "", ""
	cli.Version, cli.Date = "", ""
	assert.Equal(t, "dev", Summary())

	cli.Version, cli.Date = "1.0.0", "2026-10-17"
	assert.Equal(t, "1.0.0 (date=2026-10-17)", Summary())

	Version, Commit = "1.1.0", "abcdef0123"
	assert.Equal(t, "1.1.0 (commit=abcdef0, date=2026-10-17)", Summary())
}
