package promotion

import (
	"fmt"
	"time"

	"github.com/openclaw/gate-ctl/internal/backend"
	"github.com/openclaw/gate-ctl/internal/system"
)

// Log is the append-only promotion log: one timestamped line per
// applied promotion. Entries are never rewritten.
type Log struct {
	Path string
	FS   system.FileSystem

	// now is swappable for tests.
	now func() time.Time
}

// NewLog returns a promotion log at path.
func NewLog(path string, fs system.FileSystem) *Log {
	return &Log{Path: path, FS: fs, now: time.Now}
}

// Append records an applied promotion:
//
//	2026-08-30T14:02:11Z Promoted secondary (port 4002)
func (l *Log) Append(target backend.Backend, port int) error {
	line := fmt.Sprintf("%s Promoted %s (port %d)\n",
		l.now().UTC().Format(time.RFC3339), target, port)
	return l.FS.AppendFile(l.Path, []byte(line), 0644)
}
