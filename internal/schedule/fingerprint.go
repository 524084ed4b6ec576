package schedule

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/sitecrew/gantt/internal/domain"
	"github.com/zeebo/blake3"
)

// Fingerprint returns a stable digest of the dated shape of a schedule:
// hierarchy number, name, dates, and duration of each task. IDs and
// timestamps are excluded and task order does not matter.
func Fingerprint(tasks []domain.ScheduleTask) string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%s\x1f%s\x1f%s\x1f%s\x1f%d\x1f%s",
			t.HierarchyNumber, t.Name, t.StartDate, t.EndDate, t.Duration, t.Predecessor)
	}
	sort.Strings(lines)
	sum := blake3.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}
