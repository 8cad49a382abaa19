package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// GenerateSlots returns "HH:MM" start times from start, every duration minutes, while before end.
func GenerateSlots(start, end string, duration int) ([]string, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", duration)
	}
	from, err := parseClock(start)
	if err != nil {
		return nil, err
	}
	to, err := parseClock(end)
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0, max(0, (to-from)/duration+1))
	for m := from; m < to; m += duration {
		slots = append(slots, formatClock(m))
	}
	return slots, nil
}

// parseClock converts "HH:MM" to minutes after midnight.
func parseClock(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) != 2 || len(m) != 2 {
		return 0, ErrInvalidTime
	}
	hh, err := strconv.Atoi(h)
	if err != nil || hh < 0 || hh > 23 {
		return 0, ErrInvalidTime
	}
	mm, err := strconv.Atoi(m)
	if err != nil || mm < 0 || mm > 59 {
		return 0, ErrInvalidTime
	}
	return hh*60 + mm, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// subtract returns all minus taken, keeping the order of all.
func subtract(all, taken []string) []string {
	busy := make(map[string]bool, len(taken))
	for _, t := range taken {
		busy[t] = true
	}
	out := make([]string, 0, len(all))
	for _, s := range all {
		if !busy[s] {
			out = append(out, s)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
