package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	SizeNormal = 0x00
	SizeDouble = 0x11
	SizeWide   = 0x10
	SizeTall   = 0x01
)

// codePageWPC1252 selects Windows-1252 so accented Spanish text prints as is
const codePageWPC1252 = 16

// Document accumulates an ESC/POS byte stream. Text is encoded as
// Windows-1252; column math counts runes, not bytes.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for a printer with charWidth columns
// (32 on 58mm paper, 48 on 80mm).
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{ESC, '@', ESC, 't', codePageWPC1252})
	return d
}

// Width is the number of columns per line
func (d *Document) Width() int {
	return d.width
}

// Feed advances the paper n lines
func (d *Document) Feed(n int) *Document {
	d.buf.Write(bytes.Repeat([]byte{LF}, n))
	return d
}

// Align sets AlignLeft, AlignCenter or AlignRight for following lines
func (d *Document) Align(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// Bold toggles emphasized printing
func (d *Document) Bold(on bool) *Document {
	var b byte
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// Size sets the character size
func (d *Document) Size(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Line prints s and ends the line. Text longer than the paper wraps on the printer.
func (d *Document) Line(s string) *Document {
	d.write(s)
	d.buf.WriteByte(LF)
	return d
}

// Linef prints a formatted line
func (d *Document) Linef(format string, args ...any) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full width line of char
func (d *Document) Rule(char rune) *Document {
	return d.Line(strings.Repeat(string(char), d.width))
}

// Columns prints left flush left and right flush right on one line. The
// left text is cut short when both do not fit.
func (d *Document) Columns(left, right string) *Document {
	room := d.width - utf8.RuneCountInString(right) - 1
	left = truncate(left, room)
	gap := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return d.Line(left + strings.Repeat(" ", gap) + right)
}

// Item prints "qty x name" with the line total flush right
func (d *Document) Item(qty int, name, total string) *Document {
	return d.Columns(fmt.Sprintf("%dx %s", qty, name), total)
}

// Barcode128 prints data as a CODE128 barcode (code set B) with the
// human readable text underneath
func (d *Document) Barcode128(data string) *Document {
	payload := append([]byte{'{', 'B'}, []byte(data)...)
	d.buf.Write([]byte{GS, 'h', 80})  // height in dots
	d.buf.Write([]byte{GS, 'w', 2})   // module width
	d.buf.Write([]byte{GS, 'H', 2})   // text below
	d.buf.Write([]byte{GS, 'k', 73, byte(len(payload))})
	d.buf.Write(payload)
	d.buf.WriteByte(LF)
	return d
}

// Cut feeds past the tear bar and performs a partial cut
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 66, 3})
	return d
}

// Bytes returns the accumulated stream
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func (d *Document) write(s string) {
	encoded, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil {
		// Runes outside the code page are replaced one by one.
		var b strings.Builder
		for _, r := range s {
			if e, ok := charmap.Windows1252.EncodeRune(r); ok {
				b.WriteByte(e)
			} else {
				b.WriteByte('?')
			}
		}
		encoded = b.String()
	}
	d.buf.WriteString(encoded)
}

func truncate(s string, n int) string {
	if n < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
