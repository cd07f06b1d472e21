package navigation

// fifo is a growable ring buffer of flat cell indices
type fifo struct {
	buf        []int
	head, size int
}

func newFIFO(capacity int) *fifo {
	if capacity < 1 {
		capacity = 1
	}
	return &fifo{buf: make([]int, capacity)}
}

func (q *fifo) reset() {
	q.head = 0
	q.size = 0
}

func (q *fifo) len() int {
	return q.size
}

func (q *fifo) push(v int) {
	if q.size == len(q.buf) {
		grown := make([]int, len(q.buf)*2)
		n := copy(grown, q.buf[q.head:])
		copy(grown[n:], q.buf[:q.head])
		q.buf = grown
		q.head = 0
	}
	q.buf[(q.head+q.size)%len(q.buf)] = v
	q.size++
}

func (q *fifo) pop() int {
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v
}
