// Package babyjubjub implements the twisted-Edwards curve (Edw) arithmetic
// used for key pairs, shared secrets, and compressed-point record slots:
// complete-formula point addition, double-and-add scalar multiplication,
// and the bespoke lexicographically-largest-x compression convention that
// must match a peer implementation bit-exactly.
package babyjubjub

import (
	"math/big"

	"github.com/kysee/ocash-core/fr"
	"github.com/kysee/ocash-core/ocerr"
)

// Point is a twisted-Edwards curve point (x, y) in Fr x Fr.
type Point struct {
	X fr.Element
	Y fr.Element
}

var (
	curveA fr.Element // -1
	curveD fr.Element

	basePoint Point
	identity  Point
)

func init() {
	one := fr.FromUint64(1)
	curveA.Neg(&one)

	curveD = mustFromDecimal("12181644023421730124874158521699555681764249180949974110617291017600649128846")

	identity = Point{X: fr.FromUint64(0), Y: fr.FromUint64(1)}

	basePoint = Point{
		X: mustFromDecimal("9671717474070082183213120605117400219616337014328744928644933853176787189663"),
		Y: mustFromDecimal("16950150798460657717958625567821834550301663161624707787222815936182638968203"),
	}
}

func mustFromDecimal(dec string) fr.Element {
	i, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		panic("babyjubjub: invalid embedded decimal constant " + dec)
	}
	var e fr.Element
	e.SetBigInt(i)
	return e
}

// Identity returns the curve identity element (0, 1).
func Identity() Point { return identity }

// BasePoint returns the generator G.
func BasePoint() Point { return basePoint }

// IsOnCurve reports whether p satisfies a*x^2 + y^2 = 1 + d*x^2*y^2.
func IsOnCurve(p Point) bool {
	var x2, y2, lhs, rhs, t fr.Element
	x2.Square(&p.X)
	y2.Square(&p.Y)
	lhs.Mul(&curveA, &x2)
	lhs.Add(&lhs, &y2)

	t.Mul(&x2, &y2)
	t.Mul(&t, &curveD)
	one := fr.FromUint64(1)
	rhs.Add(&one, &t)

	return lhs.Equal(&rhs)
}

func isIdentity(p Point) bool {
	zero := fr.FromUint64(0)
	one := fr.FromUint64(1)
	return p.X.Equal(&zero) && p.Y.Equal(&one)
}

// Add computes the complete twisted-Edwards addition of p1 and p2.
func Add(p1, p2 Point) Point {
	if isIdentity(p1) {
		return p2
	}
	if isIdentity(p2) {
		return p1
	}

	var beta, gamma, delta, tau, bigT fr.Element
	beta.Mul(&p1.X, &p2.Y)
	gamma.Mul(&p1.Y, &p2.X)

	var aX1 fr.Element
	aX1.Mul(&curveA, &p1.X)
	var yMinusAx, xPlusY fr.Element
	yMinusAx.Sub(&p1.Y, &aX1)
	xPlusY.Add(&p2.X, &p2.Y)
	delta.Mul(&yMinusAx, &xPlusY)

	tau.Mul(&beta, &gamma)
	bigT.Mul(&curveD, &tau)

	one := fr.FromUint64(1)

	var x3Num, x3Den, x3 fr.Element
	x3Num.Add(&beta, &gamma)
	x3Den.Add(&one, &bigT)
	x3Den.Inverse(&x3Den)
	x3.Mul(&x3Num, &x3Den)

	var y3Num, y3Den, y3, aBeta fr.Element
	aBeta.Mul(&curveA, &beta)
	y3Num.Add(&delta, &aBeta)
	y3Num.Sub(&y3Num, &gamma)
	y3Den.Sub(&one, &bigT)
	y3Den.Inverse(&y3Den)
	y3.Mul(&y3Num, &y3Den)

	return Point{X: x3, Y: y3}
}

// ScalarMul computes scalar*p via left-to-right double-and-add over the
// 256-bit little-endian expansion of scalar (bit 0 first). scalar=0
// yields the identity.
func ScalarMul(scalar *big.Int, p Point) Point {
	result := identity
	current := p
	for i := 0; i < 256; i++ {
		if scalar.Bit(i) == 1 {
			result = Add(result, current)
		}
		current = Add(current, current)
	}
	return result
}

// isLexicographicallyLargest compares the 32-byte little-endian
// encodings of x and -x from byte 31 downwards; x wins at the first
// differing byte where its value is higher.
func isLexicographicallyLargest(x fr.Element) bool {
	var negX fr.Element
	negX.Neg(&x)

	xLE := fr.ToBytesLE(x)
	negLE := fr.ToBytesLE(negX)

	for i := 31; i >= 0; i-- {
		if xLE[i] != negLE[i] {
			return xLE[i] > negLE[i]
		}
	}
	return false
}

// Compress encodes p as 32 bytes: y as little-endian, with bit 7 of
// byte 31 set iff x is lexicographically largest.
func Compress(p Point) ([32]byte, error) {
	if !IsOnCurve(p) {
		return [32]byte{}, ocerr.New(ocerr.PointNotOnCurve, "point does not satisfy the curve equation")
	}
	out := fr.ToBytesLE(p.Y)
	if isLexicographicallyLargest(p.X) {
		out[31] |= 0x80
	}
	return out, nil
}

// Decompress recovers a Point from its 32-byte compressed form.
func Decompress(b [32]byte) (Point, error) {
	sign := b[31]&0x80 != 0
	b[31] &= 0x7f
	y := fr.FromBytesLE(b)

	x, err := recoverX(y)
	if err != nil {
		return Point{}, err
	}

	if isLexicographicallyLargest(x) != sign {
		x.Neg(&x)
	}

	p := Point{X: x, Y: y}
	if !IsOnCurve(p) {
		return Point{}, ocerr.New(ocerr.PointNotOnCurve, "decompressed point fails curve equation")
	}
	return p, nil
}

// recoverX solves x^2 = (1 - y^2) / (a - d*y^2) and returns one root;
// Decompress picks the sign-matching root from this and its negation.
func recoverX(y fr.Element) (fr.Element, error) {
	var y2, num, den, x2 fr.Element
	y2.Square(&y)

	one := fr.FromUint64(1)
	num.Sub(&one, &y2)

	var dY2 fr.Element
	dY2.Mul(&curveD, &y2)
	den.Sub(&curveA, &dY2)
	den.Inverse(&den)

	x2.Mul(&num, &den)

	var x fr.Element
	if x.Sqrt(&x2) == nil {
		return fr.Element{}, ocerr.New(ocerr.NoSquareRoot, "y-coordinate has no corresponding x")
	}
	return x, nil
}
