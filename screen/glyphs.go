package screen

// Glyphs maps character ROM codes outside printable ASCII to runes.
type Glyphs map[byte]rune

// ASCIIGlyphs draws the OSD symbols with plain ASCII so any font can show them.
var ASCIIGlyphs = Glyphs{
	0x97: 'B', // battery
	0xba: 'R', // rssi
	0x9c: 'T', // flight timer
	0x7e: '^', // throttle
}

// UnicodeGlyphs draws the OSD symbols for terminals.
var UnicodeGlyphs = Glyphs{
	0x97: '▮',
	0xba: '◢',
	0x9c: '◷',
	0x7e: '▲',
}

// Rune returns the rune shown for code c.
func (g Glyphs) Rune(c byte) rune {
	if r, ok := g[c]; ok {
		return r
	}
	if c < 0x20 || c > 0x7e {
		return '?'
	}
	return rune(c)
}
