package readyqueue_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/go-foundations/prrsched/readyqueue"
)

// testNode is the smallest possible readyqueue.Node for testing the
// queue realizations independently of the scheduler package.
type testNode struct {
	id       string
	priority uint32
	seq      uint64
}

func (n *testNode) Priority() uint32 { return n.priority }
func (n *testNode) Seq() uint64      { return n.seq }

type HeapQueueTestSuite struct {
	suite.Suite
}

func TestHeapQueueTestSuite(t *testing.T) {
	suite.Run(t, new(HeapQueueTestSuite))
}

func (ts *HeapQueueTestSuite) TestEmptyQueue() {
	q := readyqueue.New[*testNode](readyqueue.Heap, 4)
	ts.True(q.IsEmpty())
	_, ok := q.Peek()
	ts.False(ok)
	_, ok = q.Pop()
	ts.False(ok)
}

func (ts *HeapQueueTestSuite) TestOrdersByAscendingPriority() {
	q := readyqueue.New[*testNode](readyqueue.Heap, 4)
	ts.Require().NoError(q.Push(&testNode{id: "c", priority: 3, seq: 0}))
	ts.Require().NoError(q.Push(&testNode{id: "a", priority: 1, seq: 1}))
	ts.Require().NoError(q.Push(&testNode{id: "b", priority: 2, seq: 2}))

	var order []string
	for !q.IsEmpty() {
		n, _ := q.Pop()
		order = append(order, n.id)
	}
	ts.Equal([]string{"a", "b", "c"}, order)
}

func (ts *HeapQueueTestSuite) TestFIFOAmongEquals() {
	q := readyqueue.New[*testNode](readyqueue.Heap, 8)
	for i := 0; i < 5; i++ {
		ts.Require().NoError(q.Push(&testNode{id: string(rune('a' + i)), priority: 7, seq: uint64(i)}))
	}

	var order []string
	for !q.IsEmpty() {
		n, _ := q.Pop()
		order = append(order, n.id)
	}
	ts.Equal([]string{"a", "b", "c", "d", "e"}, order)
}

func (ts *HeapQueueTestSuite) TestPeekDoesNotRemove() {
	q := readyqueue.New[*testNode](readyqueue.Heap, 4)
	ts.Require().NoError(q.Push(&testNode{id: "a", priority: 1}))

	n1, ok := q.Peek()
	ts.True(ok)
	n2, ok := q.Peek()
	ts.True(ok)
	ts.Equal(n1, n2)
	ts.Equal(1, q.Len())
}

func (ts *HeapQueueTestSuite) TestPushIntoFullQueueFails() {
	q := readyqueue.New[*testNode](readyqueue.Heap, 2)
	ts.Require().NoError(q.Push(&testNode{priority: 1}))
	ts.Require().NoError(q.Push(&testNode{priority: 2}))

	err := q.Push(&testNode{priority: 3})
	ts.ErrorIs(err, readyqueue.ErrQueueFull)
}
