package fixtures_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zfifteen/geofac/fixtures"
)

func TestIsPrime(t *testing.T) {
	// 2^64 - 59 is prime
	assert.True(t, fixtures.IsPrime(new(big.Int).SetUint64(0xffffffffffffffc5)))
	// 2^64 - 1 is not prime
	assert.False(t, fixtures.IsPrime(new(big.Int).SetUint64(0xffffffffffffffff)))
	assert.False(t, fixtures.IsPrime(big.NewInt(1)))
	assert.True(t, fixtures.IsPrime(big.NewInt(2)))
}

func TestNewSemiprimeDeterministic(t *testing.T) {
	p1, q1, n1, err := fixtures.NewSemiprime(24, 42)
	require.NoError(t, err)
	p2, q2, n2, err := fixtures.NewSemiprime(24, 42)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, q1, q2)
	assert.Equal(t, n1, n2)

	assert.True(t, fixtures.IsPrime(p1))
	assert.True(t, fixtures.IsPrime(q1))
	assert.True(t, p1.Cmp(q1) <= 0)

	product := new(big.Int).Mul(p1, q1)
	assert.Equal(t, 0, product.Cmp(n1))
}

func TestNewSemiprimeDistinctSeeds(t *testing.T) {
	_, _, n1, err := fixtures.NewSemiprime(20, 1)
	require.NoError(t, err)
	_, _, n2, err := fixtures.NewSemiprime(20, 2)
	require.NoError(t, err)
	assert.NotEqual(t, n1, n2)
}

func TestFactorizeECM(t *testing.T) {
	m := new(big.Int).SetUint64(35184372088631) // 5591617 * 6292343

	factor := fixtures.FactorizeECM(m, 50)
	require.NotNil(t, factor)

	five591617 := new(big.Int).SetUint64(5591617)
	six292343 := new(big.Int).SetUint64(6292343)
	ok := factor.Cmp(five591617) == 0 || factor.Cmp(six292343) == 0
	assert.True(t, ok)
}
