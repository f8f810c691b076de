package queue_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dataflow-dl/mlnode/common/queue"
)

var _ = Describe("Fifo Tests", func() {
	It("Will create a new, empty queue correctly", func() {
		q := queue.NewFifo[string](1)
		Expect(q).ToNot(BeNil())
		Expect(q.Len()).To(Equal(0))

		val, ok := q.Dequeue()
		Expect(ok).To(BeFalse())
		Expect(val).To(Equal(""))
	})

	It("Will handle a single enqueue and dequeue operation correctly", func() {
		q := queue.NewFifo[string](1)
		Expect(q).ToNot(BeNil())

		q.Enqueue("record")
		Expect(q.Len()).To(Equal(1))

		val, ok := q.Peek()
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal("record"))

		elem, ok := q.Dequeue()
		Expect(ok).To(BeTrue())
		Expect(elem).To(Equal("record"))
		Expect(q.Len()).To(Equal(0))
	})

	It("Will preserve FIFO ordering across a series of operations", func() {
		q := queue.NewFifo[string](1)
		alphabet := "abcdefghijklmnopqrstuvwxyz"

		for i := 0; i < len(alphabet); i++ {
			q.Enqueue(alphabet[i : i+1])
			Expect(q.Len()).To(Equal(i + 1))

			val, ok := q.Peek()
			Expect(ok).To(BeTrue())
			Expect(val).To(Equal("a"))
		}

		for i := 0; i < len(alphabet); i++ {
			val, ok := q.Dequeue()
			Expect(ok).To(BeTrue())
			Expect(val).To(Equal(alphabet[i : i+1]))
		}

		Expect(q.Len()).To(Equal(0))
	})
})

var _ = Describe("Finishable Queue Tests", func() {
	It("Will deliver buffered elements in order", func() {
		q := queue.NewFinishable[int](4)

		Expect(q.Put(1)).To(BeTrue())
		Expect(q.Put(2)).To(BeTrue())
		Expect(q.Put(3)).To(BeTrue())
		Expect(q.Len()).To(Equal(3))

		for i := 1; i <= 3; i++ {
			val, ok := q.Take()
			Expect(ok).To(BeTrue())
			Expect(val).To(Equal(i))
		}
	})

	It("Will release a blocked consumer when marked finished", func() {
		q := queue.NewFinishable[int](1)

		released := make(chan struct{})
		go func() {
			defer GinkgoRecover()
			_, ok := q.Take()
			Expect(ok).To(BeFalse())
			close(released)
		}()

		// Give the consumer time to block in Take.
		time.Sleep(50 * time.Millisecond)
		q.MarkFinished()

		Eventually(released, "1s").Should(BeClosed())
	})

	It("Will drain buffered elements before reporting finished", func() {
		q := queue.NewFinishable[string](2)
		Expect(q.Put("x")).To(BeTrue())
		q.MarkFinished()

		val, ok := q.Take()
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal("x"))

		_, ok = q.Take()
		Expect(ok).To(BeFalse())
	})

	It("Will reject Put and tolerate repeated MarkFinished calls after finishing", func() {
		q := queue.NewFinishable[int](1)
		q.MarkFinished()
		q.MarkFinished()

		Expect(q.Finished()).To(BeTrue())
		Expect(q.Put(42)).To(BeFalse())
		Expect(q.Len()).To(Equal(0))
	})
})
