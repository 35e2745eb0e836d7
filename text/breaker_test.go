package text

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
)

func units(s string) []uint16 { return utf16.Encode([]rune(s)) }

func TestCharacterBreakerSkipsSurrogatePairs(t *testing.T) {
	var b CharacterBreaker
	b.SetText([]uint16{'A', 0xD83D, 0xDE00, 'B'})

	b.SetPos(1)
	assert.True(t, b.Next())
	assert.Equal(t, 3, b.Pos())
	assert.True(t, b.Prev())
	assert.Equal(t, 1, b.Pos())
}

func TestCharacterBreakerCRLF(t *testing.T) {
	var b CharacterBreaker
	b.SetText(units("a\r\nb"))

	b.SetPos(1)
	b.Next()
	assert.Equal(t, 3, b.Pos())
	b.Prev()
	assert.Equal(t, 1, b.Pos())

	// A lone CR or LF is one character.
	b.SetText(units("\n\r"))
	b.SetPos(0)
	b.Next()
	assert.Equal(t, 1, b.Pos())
}

func TestCharacterBreakerRoundTrip(t *testing.T) {
	u := units("x\U0001F600\r\ny\U0001F680\r\r\n")
	var b CharacterBreaker
	b.SetText(u)

	for pos := 0; pos <= len(u); pos++ {
		b.SetPos(pos)
		start := b.Pos()
		if !b.Next() {
			assert.Equal(t, len(u), start)
			continue
		}
		b.Prev()
		assert.Equal(t, start, b.Pos(), "from %d", pos)
	}
}

func TestCharacterBreakerSnapsOutOfPairs(t *testing.T) {
	var b CharacterBreaker
	b.SetText(units("A\U0001F600\r\n"))

	b.SetPos(2)
	assert.Equal(t, 1, b.Pos())
	b.SetPos(4)
	assert.Equal(t, 3, b.Pos())
	b.SetPos(99)
	assert.Equal(t, 5, b.Pos())
	assert.False(t, b.Next())
	b.SetPos(-1)
	assert.False(t, b.Prev())
}

func TestWordBreaker(t *testing.T) {
	var b WordBreaker
	b.SetText(units("hello  big world"))

	var stops []int
	for b.Next() {
		stops = append(stops, b.Pos())
	}
	assert.Equal(t, []int{5, 10, 16}, stops)

	stops = stops[:0]
	for b.Prev() {
		stops = append(stops, b.Pos())
	}
	assert.Equal(t, []int{11, 7, 0}, stops)

	start, end := b.WordAt(8)
	assert.Equal(t, 7, start)
	assert.Equal(t, 10, end)
}

func TestWordBreakerUTF16Offsets(t *testing.T) {
	var b WordBreaker
	b.SetText(units("\U0001F600 ok"))
	b.SetPos(0)
	b.Next()
	assert.Equal(t, 2, b.Pos())
	b.Next()
	assert.Equal(t, 5, b.Pos())
}

func TestParagraphBreaker(t *testing.T) {
	var b ParagraphBreaker
	b.SetText(units("one\r\ntwo\nthree"))

	var stops []int
	for b.Next() {
		stops = append(stops, b.Pos())
	}
	assert.Equal(t, []int{5, 9, 14}, stops)

	b.SetPos(7)
	assert.True(t, b.Prev())
	assert.Equal(t, 5, b.Pos())
	assert.True(t, b.Prev())
	assert.Equal(t, 0, b.Pos())
	assert.False(t, b.Prev())

	start, end := b.Paragraph(6)
	assert.Equal(t, 5, start)
	assert.Equal(t, 9, end)
}
