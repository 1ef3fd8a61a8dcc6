package process

import "strings"

// tail is a fixed-size ring of the most recent lines.
type tail struct {
	lines []string
	next  int
	full  bool
}

func newTail(size int) *tail {
	return &tail{lines: make([]string, size)}
}

func (t *tail) add(line string) {
	t.lines[t.next] = line
	t.next = (t.next + 1) % len(t.lines)
	if t.next == 0 {
		t.full = true
	}
}

func (t *tail) String() string {
	if !t.full {
		return strings.Join(t.lines[:t.next], "\n")
	}
	ordered := append(append([]string{}, t.lines[t.next:]...), t.lines[:t.next]...)
	return strings.Join(ordered, "\n")
}
