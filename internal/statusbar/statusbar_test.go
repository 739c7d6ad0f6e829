package statusbar

import (
	"testing"
	"time"

	"github.com/bethropolis/weave/internal/theme"
)

func TestText(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sb := New(ConfigFromTheme(&theme.WeaveDark))
	sb.now = func() time.Time { return now }

	sb.SetFileInfo("books.xml", "xml", true)
	sb.SetPosition(3, 40)
	if got, tmp := sb.Text(); got != "books.xml (xml) [Modified] -- Line: 3/40 -- q to close" || tmp {
		t.Fatalf("Text = %q, %v", got, tmp)
	}

	sb.SetTemporaryMessage("no highlighting for %s", ".txt")
	if got, tmp := sb.Text(); got != "no highlighting for .txt" || !tmp {
		t.Fatalf("message = %q, %v", got, tmp)
	}

	now = now.Add(5 * time.Second)
	if _, tmp := sb.Text(); tmp {
		t.Fatal("message should expire")
	}
}
