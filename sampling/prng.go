package sampling

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// KeyedPRNG is a deterministic, keyed byte-stream generator: the same
// key always produces the same byte stream from the same clock
// position. Grounded on the teacher's utils/sampling.NewKeyedPRNG
// contract (Read/Reset, reproducible from a key), built here on
// golang.org/x/crypto/blake2b counter-mode hashing rather than a
// dedicated XOF, since blake2b is the teacher's own PRNG primitive.
type KeyedPRNG struct {
	key     []byte
	counter uint64
	buf     []byte
	pos     int
}

// NewKeyedPRNG returns a KeyedPRNG seeded with key. An empty key is
// permitted and yields a fixed, still-deterministic stream.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	if _, err := blake2b.New512(key); err != nil {
		return nil, fmt.Errorf("sampling: invalid PRNG key: %w", err)
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &KeyedPRNG{key: k}, nil
}

// Reset rewinds the stream to its initial position.
func (p *KeyedPRNG) Reset() {
	p.counter = 0
	p.buf = nil
	p.pos = 0
}

// Read fills dst with bytes from the deterministic stream, always
// returning len(dst), nil.
func (p *KeyedPRNG) Read(dst []byte) (int, error) {
	n := 0
	for n < len(dst) {
		if p.pos == len(p.buf) {
			p.refill()
		}
		c := copy(dst[n:], p.buf[p.pos:])
		p.pos += c
		n += c
	}
	return n, nil
}

func (p *KeyedPRNG) refill() {
	h, _ := blake2b.New512(p.key)
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], p.counter)
	h.Write(ctr[:])
	p.buf = h.Sum(nil)
	p.pos = 0
	p.counter++
}

// SobolApprox is a second, independently-keyed low-discrepancy-ish
// stream used only to cross-check the golden-ratio sampler's
// determinism properties in tests (spec.md P6); it is never wired
// into the search engine's sample schedule.
type SobolApprox struct {
	prng *KeyedPRNG
}

// NewSobolApprox returns a SobolApprox keyed by key.
func NewSobolApprox(key []byte) (*SobolApprox, error) {
	prng, err := NewKeyedPRNG(key)
	if err != nil {
		return nil, err
	}
	return &SobolApprox{prng: prng}, nil
}

// Next returns the next u in [0, 1) from the stream.
func (s *SobolApprox) Next() float64 {
	var b [8]byte
	_, _ = s.prng.Read(b[:])
	// Keep 53 bits so the quotient is exact in float64 and stays below 1.
	v := binary.BigEndian.Uint64(b[:]) >> 11
	denom := new(big.Float).SetPrec(64).SetUint64(1 << 53)
	num := new(big.Float).SetPrec(64).SetUint64(v)
	u, _ := new(big.Float).SetPrec(64).Quo(num, denom).Float64()
	return u
}

// Reset rewinds the stream to its initial position.
func (s *SobolApprox) Reset() { s.prng.Reset() }
