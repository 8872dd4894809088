package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "grace chapel", NormalizeName("  Grace   Chapel "))
	assert.Equal(t, "grace chapel", NormalizeName("GRACE\tchapel"))
	assert.Equal(t, "cafe lagos", NormalizeName("Café Lagos"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestNormalizeHeader(t *testing.T) {
	for _, in := range []string{"Church Name", "church_name", "CHURCH-NAME", "\ufeffChurch  Name"} {
		assert.Equal(t, "church name", NormalizeHeader(in), in)
	}
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Grace Chapel", CleanName("  Grace \t Chapel  "))
}
