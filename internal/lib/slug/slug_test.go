package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Estate 2025", want: "estate-2025"},
		{name: "accents", in: "Città & Caffè!", want: "citta-caffe"},
		{name: "runs collapse", in: "Hero  --  Banner", want: "hero-banner"},
		{name: "trim dashes", in: "  --Quote--  ", want: "quote"},
		{name: "only symbols", in: "!!!", want: ""},
		{name: "already slug", in: "my-block-2", want: "my-block-2"},
		{name: "underscores", in: "big_hero", want: "big-hero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Promo Estate!", want: "promo-estate"},
		{name: "accents dropped not folded", in: "Caffè Città", want: "caff-citt"},
		{name: "trailing accent", in: "Qualità", want: "qualit"},
		{name: "only symbols", in: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ID(tt.in))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("estate-2025"))
	assert.False(t, Valid("Estate 2025"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("-estate"))
}
