// Package keymap maps a QWERTY keyboard onto the CHIP-8 keypad.
//
//	+---+---+---+---+     +---+---+---+---+
//	| 1 | 2 | 3 | 4 |     | 1 | 2 | 3 | C |
//	| Q | W | E | R |  -> | 4 | 5 | 6 | D |
//	| A | S | D | F |     | 7 | 8 | 9 | E |
//	| Z | X | C | V |     | A | 0 | B | F |
//	+---+---+---+---+     +---+---+---+---+
package keymap

import "unicode"

var layout = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'Q': 0x4, 'W': 0x5, 'E': 0x6, 'R': 0xD,
	'A': 0x7, 'S': 0x8, 'D': 0x9, 'F': 0xE,
	'Z': 0xA, 'X': 0x0, 'C': 0xB, 'V': 0xF,
}

// Lookup returns the keypad index for a keyboard character.
func Lookup(r rune) (int, bool) {
	key, ok := layout[unicode.ToUpper(r)]
	return key, ok
}

// Keys returns the keyboard characters of the layout.
func Keys() []rune {
	keys := make([]rune, 0, len(layout))
	for r := range layout {
		keys = append(keys, r)
	}
	return keys
}
