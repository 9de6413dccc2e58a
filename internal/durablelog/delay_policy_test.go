package durablelog_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/durable-log/internal/durablelog"
)

var _ = Describe("DelayPolicy", func() {
	It("should parse all supported delay policy types", func() {
		for _, delayPolicyType := range durablelog.DelayPolicyTypes {
			Expect(durablelog.ParseDelayPolicyType(delayPolicyType.String())).To(Equal(delayPolicyType))
		}
		Expect(durablelog.ParseDelayPolicyType("grouped")).Error().To(MatchError(durablelog.ErrDelayPolicyUnsupported))
		Expect(durablelog.DelayPolicyType(42).String()).To(Equal("unknown"))
	})

	It("should never delay with delay policy none", func() {
		Expect(durablelog.NewDelayPolicyNone().NextDelay()).To(BeZero())
	})

	It("should delay by a fixed duration", func() {
		Expect(durablelog.NewDelayPolicyFixed(time.Second).NextDelay()).To(Equal(time.Second))
		Expect(durablelog.NewDelayPolicyFixed(-time.Second).NextDelay()).To(BeZero())
	})

	It("should delay within the configured range", func() {
		policy := durablelog.NewDelayPolicyRandom(time.Millisecond, 2*time.Millisecond)
		for range 1000 {
			delay := policy.NextDelay()
			Expect(delay).To(BeNumerically(">=", time.Millisecond))
			Expect(delay).To(BeNumerically("<", 2*time.Millisecond))
		}
		Expect(durablelog.NewDelayPolicyRandom(time.Second, time.Millisecond).NextDelay()).To(Equal(time.Second))
	})
})
