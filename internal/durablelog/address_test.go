package durablelog_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/durable-log/internal/durablelog"
)

var _ = Describe("LogAddress", func() {
	It("should compare by sequence number only", func() {
		Expect(durablelog.NewLogAddress(5)).To(Equal(durablelog.NewLogAddress(5)))
		Expect(durablelog.NewLogAddress(5) == durablelog.NewLogAddress(5)).To(BeTrue())
		Expect(durablelog.NewLogAddress(0).Compare(durablelog.NewLogAddress(5))).To(Equal(-1))
		Expect(durablelog.NewLogAddress(5).Compare(durablelog.NewLogAddress(5))).To(Equal(0))
		Expect(durablelog.NewLogAddress(15).Compare(durablelog.NewLogAddress(5))).To(Equal(1))
		Expect(durablelog.NewLogAddress(15).String()).To(Equal("Sequence = 15"))
	})
})
