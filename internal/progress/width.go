package progress

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrBadWidth = errors.New("progress: bad width")

// ParseWidth resolves a width spec against the available cells. Accepted
// forms are "80%", "60" and "60ch"; an empty spec means the full width.
func ParseWidth(spec string, total int) (int, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return max(total, 1), nil
	}
	if p, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || f <= 0 || f > 100 {
			return 0, fmt.Errorf("%w: %q", ErrBadWidth, spec)
		}
		return max(int(math.Round(float64(total)*f/100)), 1), nil
	}
	s = strings.TrimSuffix(s, "ch")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadWidth, spec)
	}
	return n, nil
}
