package router

// History is a linear session history with a cursor, like a browser tab's.
type History struct {
	entries []string
	cursor  int
}

func NewHistory(initial string) *History {
	if initial == "" {
		initial = "/"
	}
	return &History{entries: []string{initial}}
}

// Push drops any forward entries and appends path.
func (h *History) Push(path string) {
	h.entries = append(h.entries[:h.cursor+1], path)
	h.cursor = len(h.entries) - 1
}

// Back moves the cursor back and reports whether it moved.
func (h *History) Back() bool {
	if !h.CanBack() {
		return false
	}
	h.cursor--
	return true
}

// Forward moves the cursor forward and reports whether it moved.
func (h *History) Forward() bool {
	if !h.CanForward() {
		return false
	}
	h.cursor++
	return true
}

func (h *History) Current() string { return h.entries[h.cursor] }
func (h *History) CanBack() bool   { return h.cursor > 0 }
func (h *History) CanForward() bool {
	return h.cursor < len(h.entries)-1
}

func (h *History) Len() int { return len(h.entries) }
