package sampling_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zfifteen/geofac/sampling"
)

func TestKeyedPRNGDeterministic(t *testing.T) {
	key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb}

	a, err := sampling.NewKeyedPRNG(key)
	require.NoError(t, err)
	b, err := sampling.NewKeyedPRNG(key)
	require.NoError(t, err)

	sum0 := make([]byte, 512)
	sum1 := make([]byte, 512)

	for i := 0; i < 128; i++ {
		_, _ = b.Read(sum1)
	}
	b.Reset()

	_, _ = a.Read(sum0)
	_, _ = b.Read(sum1)

	require.Equal(t, sum0, sum1)
}

func TestSobolApproxRange(t *testing.T) {
	s, err := sampling.NewSobolApprox([]byte("k"))
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		u := s.Next()
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
	}
}

func TestSobolApproxReset(t *testing.T) {
	s, err := sampling.NewSobolApprox([]byte("k"))
	require.NoError(t, err)
	first := s.Next()
	_ = s.Next()
	s.Reset()
	require.Equal(t, first, s.Next())
}
