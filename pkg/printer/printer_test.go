package printer

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsPrinter(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, Null{}, p)

	_, err = New(Config{Type: TypeUSB})
	assert.Error(t, err)

	_, err = New(Config{Type: "bluetooth"})
	assert.Error(t, err)
}

func TestNetworkPrinterWritesJob(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(conn)
		received <- buf.Bytes()
	}()

	p, err := New(Config{Type: TypeNetwork, Address: ln.Addr().String()})
	require.NoError(t, err)
	require.NoError(t, p.Print(context.Background(), []byte("hola")))

	assert.Equal(t, []byte("hola"), <-received)
}

func TestDocumentColumnsCountRunes(t *testing.T) {
	doc := NewDocument(20)
	doc.Columns("Azúcar", "1.200")

	out := doc.Bytes()
	// ESC @ ESC t n prefix, then 20 single-byte columns and LF
	line := out[5:]
	assert.Len(t, line, 21)
	assert.Equal(t, byte(0xFA), line[2])
	assert.Equal(t, byte(LF), line[20])
}

func TestDocumentTruncatesLongNames(t *testing.T) {
	doc := NewDocument(16)
	doc.Item(2, "Detergente concentrado 3L", "7.980")

	line := doc.Bytes()[5:]
	assert.Equal(t, "2x Deterge 7.980\n", string(line))
}

func TestBarcode128(t *testing.T) {
	doc := NewDocument(32)
	doc.Barcode128("00100100000000001")

	out := doc.Bytes()
	idx := bytes.Index(out, []byte{GS, 'k', 73})
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, byte(19), out[idx+3])
	assert.Equal(t, "{B00100100000000001", string(out[idx+4:idx+4+19]))
}
