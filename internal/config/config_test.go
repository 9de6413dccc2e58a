package config_test

import (
	"context"
	"log/slog"
	"os"
	"path"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/durable-log/internal/config"
	"github.com/backbone81/durable-log/internal/durablelog"
	"github.com/backbone81/durable-log/internal/fencing"
	"github.com/backbone81/durable-log/internal/store"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "test-config-*")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	writeConfig := func(content string) string {
		filePath := path.Join(dir, "config.yaml")
		Expect(os.WriteFile(filePath, []byte(content), 0o600)).To(Succeed())
		return filePath
	}

	It("should provide valid defaults", func() {
		cfg := config.Default()
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Store.MaxAppendSize).To(Equal(store.DefaultMaxAppendSize))
		Expect(cfg.Writer.WriteConcurrency).To(Equal(10))
		Expect(cfg.Writer.DelayPolicy).To(Equal("none"))
	})

	It("should fall back to defaults when the file does not exist", func() {
		Expect(config.Load(path.Join(dir, "missing.yaml"))).To(Equal(config.Default()))
	})

	It("should overwrite defaults with values from the file", func() {
		cfg, err := config.Load(writeConfig(`
logger:
  level: debug
  json: true
writer:
  write_concurrency: 3
  delay_policy: random
  delay: 1ms
  max_delay: 5ms
bench:
  writers: 4
`))
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Logger.JSON).To(BeTrue())
		Expect(cfg.Logger.SlogLevel()).To(Equal(slog.LevelDebug))
		Expect(cfg.Writer.WriteConcurrency).To(Equal(3))
		Expect(cfg.Writer.DelayPolicy).To(Equal("random"))
		Expect(cfg.Writer.Delay).To(Equal(time.Millisecond))
		Expect(cfg.Writer.MaxDelay).To(Equal(5 * time.Millisecond))
		Expect(cfg.Bench.Writers).To(Equal(4))
		Expect(cfg.Bench.Appends).To(Equal(config.Default().Bench.Appends))
		Expect(cfg.Store.MaxAppendSize).To(Equal(store.DefaultMaxAppendSize))
	})

	It("should reject invalid values", func() {
		Expect(config.Load(writeConfig("writer:\n  delay_policy: grouped\n"))).Error().To(MatchError(config.ErrInvalidConfig))
		Expect(config.Load(writeConfig("writer:\n  write_concurrency: 0\n"))).Error().To(MatchError(config.ErrInvalidConfig))
		Expect(config.Load(writeConfig("logger:\n  level: loud\n"))).Error().To(MatchError(config.ErrInvalidConfig))
		Expect(config.Load(writeConfig("store:\n  max_append_size: 16\n"))).Error().To(MatchError(config.ErrInvalidConfig))
		Expect(config.Load(writeConfig("bench:\n  payload_size: 0\n"))).Error().To(MatchError(config.ErrInvalidConfig))
	})

	It("should reject malformed files", func() {
		Expect(config.Load(writeConfig("writer: [\n"))).Error().To(HaveOccurred())
	})

	It("should round trip through YAML", func() {
		cfg := config.Default()
		cfg.Writer.DelayPolicy = "fixed"
		cfg.Writer.Delay = 2 * time.Millisecond
		data, err := cfg.Marshal()
		Expect(err).ToNot(HaveOccurred())

		Expect(config.Load(writeConfig(string(data)))).To(Equal(cfg))
	})

	It("should create logs with the configured writer options", func() {
		cfg := config.Default()
		cfg.Writer.WriteConcurrency = 2
		cfg.Writer.DelayPolicy = "fixed"
		cfg.Writer.Delay = time.Millisecond

		log := durablelog.New(store.New(fencing.NewGate()), cfg.Writer.LogOptions()...)
		Expect(log.Initialize()).To(Succeed())
		Expect(log.QueueStatistics()).To(Equal(durablelog.QueueStats{Capacity: 2}))
		Expect(log.Close()).To(Succeed())
	})

	It("should create a logger", func() {
		logger, err := config.LoggerConfig{Level: "warn", JSON: true}.NewLogger()
		Expect(err).ToNot(HaveOccurred())
		Expect(logger.Enabled(context.Background(), slog.LevelInfo)).To(BeFalse())
		Expect(logger.Enabled(context.Background(), slog.LevelWarn)).To(BeTrue())
	})
})
