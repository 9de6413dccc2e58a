package fencing_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFencing(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Fencing Suite")
}
