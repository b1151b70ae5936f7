package openfda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single word", "spinach", "product_description:spinach"},
		{"phrase is quoted", "chunky monkey", `product_description:"chunky monkey"`},
		{"surrounding whitespace trimmed", "  spinach \n", "product_description:spinach"},
		{"tab counts as whitespace", "ice\tcream", "product_description:\"ice\tcream\""},
		{"quote escaped", `ben"s`, `product_description:ben\"s`},
		{"quote escaped inside phrase", `"chunky" monkey`, `product_description:"\"chunky\" monkey"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSearchQuery(tt.input))
		})
	}
}
