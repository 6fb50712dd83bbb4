package debugger

import "fmt"

// Eng renders value with a human-friendly magnitude suffix (K/M/G), mirroring
// the reference debugger's eng() helper used by the "perf" command.
func Eng(value float64) string {
	units := []struct {
		threshold float64
		suffix    string
	}{
		{1e9, "G"},
		{1e6, "M"},
		{1e3, "K"},
	}
	for _, u := range units {
		if value >= u.threshold {
			return fmt.Sprintf("%.2f%s", value/u.threshold, u.suffix)
		}
	}
	return fmt.Sprintf("%.2f", value)
}

// Time2s renders a duration in seconds as a human-friendly string, choosing
// the coarsest unit that keeps the value readable: hours, minutes, seconds,
// milliseconds, or microseconds.
func Time2s(seconds float64) string {
	switch {
	case seconds >= 3600:
		return fmt.Sprintf("%.2fh", seconds/3600)
	case seconds >= 60:
		return fmt.Sprintf("%.2fm", seconds/60)
	case seconds >= 1:
		return fmt.Sprintf("%.2fs", seconds)
	case seconds >= 1e-3:
		return fmt.Sprintf("%.2fms", seconds*1e3)
	default:
		return fmt.Sprintf("%.2fus", seconds*1e6)
	}
}
