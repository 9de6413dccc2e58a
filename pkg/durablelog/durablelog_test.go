package durablelog_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/backbone81/durable-log/pkg/durablelog"
)

var _ = Describe("Durable log", func() {
	It("should register all metrics", func() {
		registry := prometheus.NewRegistry()
		Expect(durablelog.RegisterMetrics(registry)).To(Succeed())
		Expect(durablelog.RegisterMetrics(registry)).ToNot(Succeed())
	})

	It("should write, fence and truncate through the public API", func() {
		ctx := context.Background()
		store := durablelog.NewStore()

		writer1 := durablelog.New(store, durablelog.WithWriteConcurrency(1))
		Expect(writer1.Initialize()).To(Succeed())
		for _, payload := range []string{"hello", "distributed", "log"} {
			Expect(writer1.Append(ctx, []byte(payload))).Error().ToNot(HaveOccurred())
		}

		writer2 := durablelog.New(store)
		Expect(writer2.Initialize()).To(Succeed())
		Expect(writer1.Append(ctx, []byte("late"))).Error().To(MatchError(durablelog.ErrNotPrimary))
		Expect(writer1.Close()).To(Succeed())

		Expect(writer2.Truncate(durablelog.NewLogAddress(10))).To(Succeed())
		reader, err := writer2.Read()
		Expect(err).ToNot(HaveOccurred())
		Expect(reader.Next()).To(BeTrue())
		Expect(reader.Value().Address()).To(Equal(durablelog.NewLogAddress(16)))
		Expect(reader.Next()).To(BeFalse())
		Expect(writer2.Close()).To(Succeed())
	})
})
