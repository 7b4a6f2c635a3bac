package smd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{"-1", -1},
		{"+7", 7},
		{" 3 ", 3},
		{"12abc", 12},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{"1.9", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseInt(tt.in), "parseInt(%q)", tt.in)
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"-0.25", -0.25},
		{"1e3", 1000},
		{"2.5x", 2.5},
		{"1.5e", 1.5},
		{".5", 0.5},
		{"nope", 0},
		{"", 0},
		{"-", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseFloat(tt.in), "parseFloat(%q)", tt.in)
	}
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"0", `"root"`, "-1"}, fields(`0 "root" -1`))
	assert.Equal(t, []string{"1", `"Bip01 Pelvis"`, "0"}, fields("1\t\"Bip01 Pelvis\"   0"))
	assert.Empty(t, fields("   "))
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "root", unquote(`"root"`))
	assert.Equal(t, "root", unquote("root"))
	assert.Equal(t, "Bip01 Pelvis", unquote(`"Bip01 Pelvis"`))
}

func TestTextureKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"materials/brick.vmt", "materials/brick"},
		{"brick.tga", "brick"},
		{"brick", "brick"},
		{"skin.v2.bmp", "skin.v2"},
		{"dir.v2/brick", "dir"},
		{"a.b/c", "a"},
		{`models\dir.x\face.tga`, `models\dir.x\face`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, textureKey(tt.in), "textureKey(%q)", tt.in)
	}
}
