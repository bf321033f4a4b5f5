// Package ntt implements the radix-2 number-theoretic transform used by
// the coinbase puzzle's evaluation domain.
//
// gnark-crypto's own fr/fft.Domain transforms scalars only; deriving the
// KZG Lagrange basis at trim time requires the same transform applied to
// G1 points (powers_of_beta_g -> lagrange_basis_at_beta_g), which has no
// generic-group entry point in the library. Both transforms below are the
// textbook iterative Cooley-Tukey DIT NTT: bit-reverse the input, then
// apply log2(n) butterfly stages using powers of a primitive n-th root of
// unity as twiddle factors. The G1 variant is the identical algorithm with
// field multiplication replaced by scalar multiplication and field
// addition replaced by point addition -- valid because G1 is an
// Fr-module under scalar multiplication, so the same linear combinations
// the scalar NTT performs carry over unchanged.
//
// n must be a power of two; callers are responsible for sizing and padding.
package ntt

import (
	"math/big"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/ABMatrix/snarkVM/internal/parallel"
)

// bitReverse returns the reversal of the low `bits` bits of i.
func bitReverse(i, bits int) int {
	r := 0
	for b := 0; b < bits; b++ {
		r = (r << 1) | (i & 1)
		i >>= 1
	}
	return r
}

func log2(n int) int {
	bits := 0
	for (1 << bits) < n {
		bits++
	}
	return bits
}

func permuteFr(a []fr.Element) {
	n := len(a)
	bits := log2(n)
	for i := 0; i < n; i++ {
		j := bitReverse(i, bits)
		if j > i {
			a[i], a[j] = a[j], a[i]
		}
	}
}

func permuteG1(a []bls12377.G1Jac) {
	n := len(a)
	bits := log2(n)
	for i := 0; i < n; i++ {
		j := bitReverse(i, bits)
		if j > i {
			a[i], a[j] = a[j], a[i]
		}
	}
}

// pow computes base^exp in Fr via repeated squaring.
func pow(base fr.Element, exp uint64) fr.Element {
	var result fr.Element
	result.SetOne()
	b := base
	for exp > 0 {
		if exp&1 == 1 {
			result.Mul(&result, &b)
		}
		b.Mul(&b, &b)
		exp >>= 1
	}
	return result
}

// FrForward computes, in place, out[i] = p(root^i) for i in [0, n) where p
// is the polynomial whose coefficients are the input values of a (natural
// order) and root is a primitive n-th root of unity. n = len(a) must be a
// power of two.
func FrForward(a []fr.Element, root fr.Element) {
	frButterflies(a, root)
}

// FrInverse computes, in place, the coefficients of the unique degree <n
// polynomial p such that p(root^i) = a[i] for i in [0, n). root must be
// the same primitive n-th root of unity used by FrForward.
func FrInverse(a []fr.Element, root fr.Element) {
	var rootInv fr.Element
	rootInv.Inverse(&root)
	frButterflies(a, rootInv)

	var nInv fr.Element
	nInv.SetUint64(uint64(len(a)))
	nInv.Inverse(&nInv)
	for i := range a {
		a[i].Mul(&a[i], &nInv)
	}
}

func frButterflies(a []fr.Element, root fr.Element) {
	n := len(a)
	if n <= 1 {
		return
	}
	permuteFr(a)
	for length := 2; length <= n; length <<= 1 {
		wlen := pow(root, uint64(n/length))
		half := length / 2
		numBlocks := n / length
		parallel.Range(numBlocks, func(lo, hi int) {
			for block := lo; block < hi; block++ {
				i := block * length
				w := fr.Element{}
				w.SetOne()
				for j := 0; j < half; j++ {
					var v fr.Element
					v.Mul(&a[i+j+half], &w)

					u := a[i+j]
					a[i+j].Add(&u, &v)
					a[i+j+half].Sub(&u, &v)

					w.Mul(&w, &wlen)
				}
			}
		})
	}
}

// G1Forward computes, in place, out[i] = Sum_j a[j] * root^(i*j) for i in
// [0, n), i.e. the same transform as FrForward applied to a vector of G1
// points instead of scalars (the "evaluate the polynomial with these
// coefficients at every power of root" interpretation carries over
// directly since the coefficients here are group elements and the
// evaluation point powers are scalars).
func G1Forward(a []bls12377.G1Jac, root fr.Element) {
	g1Butterflies(a, root)
}

// G1Inverse is the inverse of G1Forward.
func G1Inverse(a []bls12377.G1Jac, root fr.Element) {
	var rootInv fr.Element
	rootInv.Inverse(&root)
	g1Butterflies(a, rootInv)

	var nInv fr.Element
	nInv.SetUint64(uint64(len(a)))
	nInv.Inverse(&nInv)

	var nInvBig big.Int
	nInv.ToBigIntRegular(&nInvBig)
	for i := range a {
		a[i].ScalarMultiplication(&a[i], &nInvBig)
	}
}

func g1Butterflies(a []bls12377.G1Jac, root fr.Element) {
	n := len(a)
	if n <= 1 {
		return
	}
	permuteG1(a)
	for length := 2; length <= n; length <<= 1 {
		wlen := pow(root, uint64(n/length))
		half := length / 2
		numBlocks := n / length
		parallel.Range(numBlocks, func(lo, hi int) {
			for block := lo; block < hi; block++ {
				i := block * length
				w := fr.Element{}
				w.SetOne()
				for j := 0; j < half; j++ {
					var wBig big.Int
					w.ToBigIntRegular(&wBig)

					var v bls12377.G1Jac
					v.ScalarMultiplication(&a[i+j+half], &wBig)

					u := a[i+j]
					var sum, diff bls12377.G1Jac
					sum.Set(&u)
					sum.AddAssign(&v)
					diff.Set(&u)
					diff.SubAssign(&v)

					a[i+j] = sum
					a[i+j+half] = diff

					w.Mul(&w, &wlen)
				}
			}
		})
	}
}
