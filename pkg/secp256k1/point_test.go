package secp256k1

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func hexToBytes(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func pointFromHex(t testing.TB, xHex, yHex string) Point {
	t.Helper()
	p, err := NewPoint(FieldElementFromBytes(hexToBytes(t, xHex)), FieldElementFromBytes(hexToBytes(t, yHex)))
	if err != nil {
		t.Fatalf("NewPoint(%s, %s): %v", xHex, yHex, err)
	}
	return p
}

func TestPoint_GeneratorOnCurve(t *testing.T) {
	g := Generator()
	assert.False(t, g.IsInfinity())
	assert.True(t, g.IsOnCurve())

	x, ok := g.X()
	require.True(t, ok)
	assert.Equal(t, generatorXHex, x.String())
	y, ok := g.Y()
	require.True(t, ok)
	assert.Equal(t, generatorYHex, y.String())
}

func TestPoint_KnownMultiples(t *testing.T) {
	twoG := pointFromHex(t,
		"c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5",
		"1ae168fea63dc339a3c58419466ceaeef7f632653266d0e1236431a950cfe52a")
	threeG := pointFromHex(t,
		"f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9",
		"388f7b0f632de8140fe337e62a37f3566500a99934c2231b6cb9fd7584b8e672")

	g := Generator()
	assert.True(t, g.Double().Equal(twoG), "G+G")
	assert.True(t, g.Add(g).Equal(twoG), "G.Add(G)")
	assert.True(t, twoG.Add(g).Equal(threeG), "2G+G")
	assert.True(t, g.Add(twoG).Equal(threeG), "G+2G")
	assert.True(t, g.Mul(uint256.NewInt(3)).Equal(threeG), "3*G")
	assert.True(t, ScalarBaseMult(ScalarFromUint64(2)).Equal(twoG), "ScalarBaseMult(2)")
}

func TestPoint_Identity(t *testing.T) {
	var zero Point
	id := Identity()
	g := Generator()

	assert.True(t, zero.IsInfinity(), "zero value must be the identity")
	assert.True(t, id.Equal(zero))
	assert.True(t, id.IsOnCurve())
	assert.False(t, id.Equal(g))
	assert.Equal(t, "identity", id.String())

	_, ok := id.X()
	assert.False(t, ok)
	_, ok = id.Y()
	assert.False(t, ok)

	assert.True(t, id.Add(g).Equal(g), "O+G")
	assert.True(t, g.Add(id).Equal(g), "G+O")
	assert.True(t, id.Add(id).IsInfinity(), "O+O")
	assert.True(t, id.Double().IsInfinity(), "2*O")
	assert.True(t, id.Neg().IsInfinity(), "-O")
	assert.True(t, id.Mul(uint256.NewInt(12345)).IsInfinity(), "k*O")
}

func TestPoint_AddInverse(t *testing.T) {
	g := Generator()
	negG := g.Neg()

	assert.True(t, negG.IsOnCurve())
	assert.False(t, negG.Equal(g))
	assert.True(t, g.Add(negG).IsInfinity(), "G + -G")
	assert.True(t, negG.Add(g).IsInfinity(), "-G + G")
	assert.True(t, negG.Neg().Equal(g), "--G")
}

func TestPoint_MulEdgeScalars(t *testing.T) {
	g := Generator()
	n := N()

	var nMinusOne, nPlusOne uint256.Int
	nMinusOne.SubUint64(&n, 1)
	nPlusOne.AddUint64(&n, 1)

	tests := []struct {
		name string
		k    *uint256.Int
		want Point
	}{
		{"zero", uint256.NewInt(0), Identity()},
		{"one", uint256.NewInt(1), g},
		{"n", &n, Identity()},
		{"n-1", &nMinusOne, g.Neg()},
		{"n+1", &nPlusOne, g},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Mul(tc.k)
			if !got.Equal(tc.want) {
				t.Errorf("have: %v\nwant: %v", got, tc.want)
			}
		})
	}
}

func TestNewPoint_NotOnCurve(t *testing.T) {
	_, err := NewPoint(FieldElementFromUint64(1), FieldElementFromUint64(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPointNotOnCurve))
}

func TestPoint_String(t *testing.T) {
	s := Generator().String()
	assert.Equal(t, "("+generatorXHex+", "+generatorYHex+")", s)
}

func drawScalar(t *rapid.T, label string) Scalar {
	b := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, label)
	return ScalarFromBytes(b)
}

func TestPoint_MatchesBtcec(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := drawScalar(t, "k")
		if k.IsZero() {
			t.Skip("zero is not a private key")
		}
		kb := k.Bytes()

		_, pub := btcec.PrivKeyFromBytes(kb[:])
		got := ScalarBaseMult(k)

		if have, want := hex.EncodeToString(got.SerializeUncompressed()),
			hex.EncodeToString(pub.SerializeUncompressed()); have != want {
			t.Fatalf("k=%v\nhave: %s\nwant: %s", k, have, want)
		}
	})
}

func TestPoint_GroupLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawScalar(t, "a")
		b := drawScalar(t, "b")

		aG := ScalarBaseMult(a)
		bG := ScalarBaseMult(b)

		if !aG.IsOnCurve() {
			t.Fatalf("aG is not on the curve: %v", aG)
		}
		if !aG.Add(bG).Equal(bG.Add(aG)) {
			t.Fatal("addition is not commutative")
		}
		if !aG.Add(bG).Equal(ScalarBaseMult(a.Add(b))) {
			t.Fatal("aG + bG != (a+b)G")
		}
		if !aG.ScalarMult(b).Equal(bG.ScalarMult(a)) {
			t.Fatal("b(aG) != a(bG)")
		}
		if !aG.Add(aG.Neg()).IsInfinity() {
			t.Fatal("aG + -aG is not the identity")
		}
	})
}
