package scratch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferFormats(t *testing.T) {
	b := New(8)
	got := b.S("vol: ").F64(0.5, 2).C(' ').I(-3).C(' ').Bool(true).R('é').String()
	assert.Equal(t, "vol: 0.50 -3 trueé", got)
}

func TestBufferReuse(t *testing.T) {
	b := New(32)
	b.S("first")
	c := b.Cap()
	b.Reset().S("second")
	assert.Equal(t, "second", b.View())
	assert.Equal(t, c, b.Cap())
	assert.Equal(t, "", New(0).View())
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab--", New(0).S("ab").Pad(4, '-').String())
	assert.Equal(t, "abcd", New(0).S("abcd").Pad(2, '-').String())
}
