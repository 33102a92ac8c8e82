package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImage_AddEdIsIdempotent(t *testing.T) {
	img := &Image{Ark: "3:1:AAA"}

	img.AddEd("5a")
	img.AddEd("6")
	img.AddEd("5A")
	img.AddEd("5a")

	assert.Equal(t, []string{"5A", "6"}, img.Eds.Values())
}

func TestImage_RemoveEd(t *testing.T) {
	img := &Image{Ark: "3:1:AAA", Eds: NewEdSet("1", "2", "3")}

	img.RemoveEd("2")
	img.RemoveEd("missing")

	assert.Equal(t, []string{"1", "3"}, img.Eds.Values())
	assert.True(t, img.Eds.Contains("3"))
	assert.False(t, img.Eds.Contains("2"))

	// Remaining entries stay addressable after a removal shifts them
	img.RemoveEd("3")
	assert.Equal(t, []string{"1"}, img.Eds.Values())
}

func TestImage_LastEd(t *testing.T) {
	img := &Image{}
	_, ok := img.LastEd()
	assert.False(t, ok)

	img.AddEd("9")
	img.AddEd("10")
	img.AddEd("9")

	last, ok := img.LastEd()
	assert.True(t, ok)
	assert.Equal(t, "10", last)
}

func TestImage_EqualByArk(t *testing.T) {
	a := &Image{Ark: "3:1:X", UTPCode: "A"}
	b := &Image{Ark: "3:1:X", UTPCode: "B", ImageIndex: 9}
	c := &Image{Ark: "3:1:Y"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestImage_URL(t *testing.T) {
	img := &Image{Ark: "3:1:3QHV-R32D-GPLS", ImageIndex: 493, Category: "1037259"}

	assert.Equal(t,
		"https://www.familysearch.org/ark:/61903/3:1:3QHV-R32D-GPLS?i=493&cat=1037259",
		img.URL(""))
	assert.Equal(t, "file:///imgs/3:1:3QHV-R32D-GPLS.png", img.URL("file:///imgs/{ark}.png"))
}
