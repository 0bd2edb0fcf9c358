package decoder

// Scancodes from the Linux input event ABI (input-event-codes.h), limited to
// the keys a barcode scanner in keyboard mode can produce.
const (
	KeyEnter      uint16 = 28
	KeyLeftShift  uint16 = 42
	KeyRightShift uint16 = 54

	key1 uint16 = 2
	key2 uint16 = 3
	key3 uint16 = 4
	key4 uint16 = 5
	key5 uint16 = 6
	key6 uint16 = 7
	key7 uint16 = 8
	key8 uint16 = 9
	key9 uint16 = 10
	key0 uint16 = 11

	keyA uint16 = 30
	keyB uint16 = 48
	keyC uint16 = 46
	keyD uint16 = 32
	keyE uint16 = 18
	keyF uint16 = 33
	keyG uint16 = 34
	keyH uint16 = 35
	keyI uint16 = 23
	keyJ uint16 = 36
	keyK uint16 = 37
	keyL uint16 = 38
	keyM uint16 = 50
	keyN uint16 = 49
	keyO uint16 = 24
	keyP uint16 = 25
	keyQ uint16 = 16
	keyR uint16 = 19
	keyS uint16 = 31
	keyT uint16 = 20
	keyU uint16 = 22
	keyV uint16 = 47
	keyW uint16 = 17
	keyX uint16 = 45
	keyY uint16 = 21
	keyZ uint16 = 44

	keySpace      uint16 = 57
	keyMinus      uint16 = 12
	keyEqual      uint16 = 13
	keyLeftBrace  uint16 = 26
	keyRightBrace uint16 = 27
	keySemicolon  uint16 = 39
	keyApostrophe uint16 = 40
	keyGrave      uint16 = 41
	keyBackslash  uint16 = 43
	keyComma      uint16 = 51
	keyDot        uint16 = 52
	keySlash      uint16 = 53
)

// scancodes maps unshifted scancodes to their printable characters: digits,
// lowercase letters and the punctuation that appears in barcode symbologies.
var scancodes = map[uint16]rune{
	key1: '1', key2: '2', key3: '3', key4: '4', key5: '5',
	key6: '6', key7: '7', key8: '8', key9: '9', key0: '0',

	keyA: 'a', keyB: 'b', keyC: 'c', keyD: 'd', keyE: 'e', keyF: 'f',
	keyG: 'g', keyH: 'h', keyI: 'i', keyJ: 'j', keyK: 'k', keyL: 'l',
	keyM: 'm', keyN: 'n', keyO: 'o', keyP: 'p', keyQ: 'q', keyR: 'r',
	keyS: 's', keyT: 't', keyU: 'u', keyV: 'v', keyW: 'w', keyX: 'x',
	keyY: 'y', keyZ: 'z',

	keySpace:      ' ',
	keyMinus:      '-',
	keyEqual:      '=',
	keyLeftBrace:  '[',
	keyRightBrace: ']',
	keySemicolon:  ';',
	keyApostrophe: '\'',
	keyGrave:      '`',
	keyBackslash:  '\\',
	keyComma:      ',',
	keyDot:        '.',
	keySlash:      '/',
}

// shiftedScancodes maps scancodes to their shifted variants. Scancodes absent
// here fall back to the unshifted table even while shift is held.
var shiftedScancodes = map[uint16]rune{
	key1: '!', key2: '@', key3: '#', key4: '$', key5: '%',
	key6: '^', key7: '&', key8: '*', key9: '(', key0: ')',

	keyA: 'A', keyB: 'B', keyC: 'C', keyD: 'D', keyE: 'E', keyF: 'F',
	keyG: 'G', keyH: 'H', keyI: 'I', keyJ: 'J', keyK: 'K', keyL: 'L',
	keyM: 'M', keyN: 'N', keyO: 'O', keyP: 'P', keyQ: 'Q', keyR: 'R',
	keyS: 'S', keyT: 'T', keyU: 'U', keyV: 'V', keyW: 'W', keyX: 'X',
	keyY: 'Y', keyZ: 'Z',

	keyMinus:      '_',
	keyEqual:      '+',
	keyLeftBrace:  '{',
	keyRightBrace: '}',
	keySemicolon:  ':',
	keyApostrophe: '"',
	keyGrave:      '~',
	keyBackslash:  '|',
	keyComma:      '<',
	keyDot:        '>',
	keySlash:      '?',
}
