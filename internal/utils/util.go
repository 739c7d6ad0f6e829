package utils

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// ByteOffsetToRuneIndex converts a byte offset to a rune index in a byte slice.
// An offset inside a multi-byte rune counts only the runes before it.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	currentOffset := 0
	for currentOffset < byteOffset {
		_, size := utf8.DecodeRune(line[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// PadRight pads s with spaces to width cells.
func PadRight(s string, width int) string {
	for w := DisplayWidth(s); w < width; w++ {
		s += " "
	}
	return s
}

// Digits returns the number of decimal digits of n (at least 1).
func Digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
