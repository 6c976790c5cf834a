package diag

import (
	"testing"

	"github.com/lithammer/dedent"
)

func setMessageMarkers(t *testing.T, start, end string) {
	savedStart, savedEnd := messageStart, messageEnd
	messageStart, messageEnd = start, end
	t.Cleanup(func() { messageStart, messageEnd = savedStart, savedEnd })
}

// Like dedent.Dedent, but also strips the leading newline so that a fixture
// can start on its own line.
func dedentFixture(s string) string {
	s = dedent.Dedent(s)
	if len(s) > 0 && s[0] == '\n' {
		return s[1:]
	}
	return s
}
