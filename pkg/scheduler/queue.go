package scheduler

// queue is a LIFO free-list; dispatch order across tasks is still
// submission order because the backlog only holds tasks while all workers
// are busy.
type queue[T any] []T

func (q *queue[T]) len() int { return len(*q) }

func (q *queue[T]) pop() T {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[0 : n-1]
	return x
}

func (q *queue[T]) push(t T) {
	*q = append(*q, t)
}
