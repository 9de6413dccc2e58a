package durablelog_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDurableLog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Public Durable Log Suite")
}
