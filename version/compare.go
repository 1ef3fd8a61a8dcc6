package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Compare orders two "major.minor.patch" versions, with or without a "v"
// prefix: 1 when a is newer, -1 when b is newer, 0 when they are equal.
// Anything after the patch number, such as "-rc1", is ignored.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		if c := cmp.Compare(av[i], bv[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

func parse(s string) ([3]int, error) {
	var v [3]int

	parts := strings.SplitN(strings.TrimPrefix(strings.TrimSpace(s), "v"), ".", 3)
	if len(parts) != 3 {
		return v, fmt.Errorf("invalid version %q", s)
	}

	parts[2], _, _ = strings.Cut(parts[2], "-")
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return v, fmt.Errorf("invalid version %q", s)
		}
		v[i] = n
	}
	return v, nil
}
