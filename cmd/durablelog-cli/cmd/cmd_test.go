package cmd

import (
	"bytes"
	"os"
	"path"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("durablelog-cli", func() {
	var (
		dir        string
		configFile string
		out        bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "test-cli-*")
		Expect(err).ToNot(HaveOccurred())

		configFile = path.Join(dir, "durablelog.yaml")
		Expect(os.WriteFile(configFile, []byte(`
logger:
  level: error
writer:
  write_concurrency: 4
  delay_policy: random
  max_delay: 200us
bench:
  writers: 3
  appends: 200
  payload_size: 16
`), 0o600)).To(Succeed())

		out.Reset()
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should print the effective configuration", func() {
		rootCmd.SetArgs([]string{"config", "--config", configFile})
		Expect(rootCmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("write_concurrency: 4"))
		Expect(out.String()).To(ContainSubstring("delay_policy: random"))
	})

	It("should run the bench and verify the log", func() {
		rootCmd.SetArgs([]string{"bench", "--config", configFile})
		Expect(rootCmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Writers:        3"))
		Expect(out.String()).To(ContainSubstring("Entries:        600"))
	})

	It("should demonstrate fencing", func() {
		rootCmd.SetArgs([]string{"fence", "--config", configFile})
		Expect(rootCmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("old-writer initialized with epoch 1 and appended at 0"))
		Expect(out.String()).To(ContainSubstring("new-writer initialized with epoch 2"))
		Expect(out.String()).To(ContainSubstring("old-writer append rejected"))
		Expect(out.String()).To(ContainSubstring("new-writer appended at 21"))
	})

	It("should fail on an invalid configuration", func() {
		Expect(os.WriteFile(configFile, []byte("writer:\n  delay_policy: grouped\n"), 0o600)).To(Succeed())
		rootCmd.SetArgs([]string{"config", "--config", configFile})
		Expect(rootCmd.Execute()).ToNot(Succeed())
	})
})
