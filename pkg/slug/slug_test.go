package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contentadmin/mediastore/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Winter Jacket", "winter-jacket"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"punctuation runs", "Hello -- World!!", "hello-world"},
		{"leading and trailing junk", "  --Sale!  ", "sale"},
		{"digits", "Page 2 of 10", "page-2-of-10"},
		{"already a slug", "winter-jacket-2026", "winter-jacket-2026"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
