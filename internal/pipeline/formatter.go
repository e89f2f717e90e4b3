package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// formatSRTTime renders d as HH:MM:SS,mmm.
func formatSRTTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

// formatASSTime renders d as H:MM:SS.cc. Centiseconds are truncated.
func formatASSTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%d:%02d:%02d.%02d", cs/360000, cs/6000%60, cs/100%60, cs%100)
}

func generateSRT(events []Event) string {
	if len(events) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, ev := range events {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n", i+1,
			formatSRTTime(ev.Start), formatSRTTime(ev.End), strings.Join(ev.Lines, "\n"))
		if i < len(events)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
