package splat

// commandKind distinguishes undo-log entries.
type commandKind uint8

const (
	commandAppend commandKind = iota
	commandEdit
)

// command is one undo-log entry: either the live count before an add
// stroke, or the captured pre-stroke state of every slot an edit stroke
// touched.
type command struct {
	kind commandKind

	// count is the live count before the add stroke (commandAppend).
	count int

	// slots, colors (3 per slot) and opacities hold the pre-stroke state
	// (commandEdit).
	slots     []int
	colors    []float32
	opacities []float32
}

// undoLog is a LIFO of commands. With a positive limit it is a ring: a push
// onto a full log overwrites the oldest command.
type undoLog struct {
	cmds  []command
	head  int // index of the oldest command when bounded
	n     int
	limit int
}

func newUndoLog(limit int) *undoLog {
	l := &undoLog{limit: limit}
	if limit > 0 {
		l.cmds = make([]command, limit)
	}
	return l
}

// push appends c as the newest command. It reports whether the oldest
// command was evicted to make room.
func (l *undoLog) push(c command) bool {
	if l.limit == 0 {
		l.cmds = append(l.cmds, c)
		l.n++
		return false
	}

	if l.n == l.limit {
		l.cmds[l.head] = c
		l.head = (l.head + 1) % l.limit
		return true
	}
	l.cmds[(l.head+l.n)%l.limit] = c
	l.n++
	return false
}

// pop removes and returns the newest command.
func (l *undoLog) pop() (command, bool) {
	if l.n == 0 {
		return command{}, false
	}
	l.n--

	var idx int
	if l.limit == 0 {
		idx = l.n
	} else {
		idx = (l.head + l.n) % l.limit
	}
	c := l.cmds[idx]
	l.cmds[idx] = command{}
	if l.limit == 0 {
		l.cmds = l.cmds[:l.n]
	}
	return c, true
}

// len returns the number of commands that can be undone.
func (l *undoLog) len() int {
	return l.n
}

// reset discards every command.
func (l *undoLog) reset() {
	if l.limit == 0 {
		l.cmds = nil
	} else {
		clear(l.cmds)
	}
	l.head = 0
	l.n = 0
}
