package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadeus-go/amadeus/wire"
)

type payload struct {
	Key   string
	Count int64
}

func TestGobCodecRoundTrips(t *testing.T) {
	c := wire.GobCodec[payload]{}
	in := payload{Key: "hot", Count: 42}

	blob, err := c.Encode(in)
	require.NoError(t, err)
	out, err := c.Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCompressedCodecRoundTrips(t *testing.T) {
	c := wire.NewCompressedGobCodec[payload]()
	in := payload{Key: "cold", Count: 7}

	blob, err := c.Encode(in)
	require.NoError(t, err)
	out, err := c.Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCompressedCodecShrinksRepetitiveData(t *testing.T) {
	raw := wire.GobCodec[[]byte]{}
	compressed := wire.NewCompressedGobCodec[[]byte]()

	data := make([]byte, 4096)
	for i := range data {
		data[i] = 'a'
	}

	rawBlob, err := raw.Encode(data)
	require.NoError(t, err)
	compressedBlob, err := compressed.Encode(data)
	require.NoError(t, err)

	assert.Less(t, len(compressedBlob), len(rawBlob))

	out, err := compressed.Decode(compressedBlob)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}
