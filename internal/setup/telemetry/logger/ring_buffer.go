package logger

// RingBuffer keeps the most recent lines written to a log file.
type RingBuffer struct {
	lines    []string
	capacity int
	head     int // Next write position
	size     int // Lines currently held
	seen     int // Lines added since the last compaction
}

// NewRingBuffer creates a ring buffer holding at most capacity lines.
// A non-positive capacity holds a single line.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1
	}

	return &RingBuffer{
		lines:    make([]string, capacity),
		capacity: capacity,
	}
}

// Add appends a line, overwriting the oldest one when full.
func (rb *RingBuffer) Add(line string) {
	rb.lines[rb.head] = line
	rb.head = (rb.head + 1) % rb.capacity

	if rb.size < rb.capacity {
		rb.size++
	}

	rb.seen++
}

// Len returns the number of lines held.
func (rb *RingBuffer) Len() int {
	return rb.size
}

// Cap returns the maximum number of lines held.
func (rb *RingBuffer) Cap() int {
	return rb.capacity
}

// Lines returns the held lines oldest first.
func (rb *RingBuffer) Lines() []string {
	if rb.size == 0 {
		return nil
	}

	result := make([]string, rb.size)
	start := (rb.head - rb.size + rb.capacity) % rb.capacity

	for i := range rb.size {
		result[i] = rb.lines[(start+i)%rb.capacity]
	}

	return result
}

// overflowed reports whether the file on disk holds twice the capacity.
func (rb *RingBuffer) overflowed() bool {
	return rb.seen >= rb.capacity*2
}

// compacted marks the file on disk as holding only the buffered lines.
func (rb *RingBuffer) compacted() {
	rb.seen = rb.size
}
