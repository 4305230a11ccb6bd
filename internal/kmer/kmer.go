// internal/kmer/kmer.go
package kmer

// K is the fixed window length used throughout the index.
const K = 16

// Key is a k-mer packed into an integer: 2 bits per base, most-significant
// base first (A=0, T=1, C=2, G=3). Valid keys are in [0, 4^K-1]; any window
// containing a base outside A/C/G/T encodes to Invalid.
type Key int64

// Invalid is the reserved key for windows with ambiguous bases.
const Invalid Key = -1

// baseCode maps a byte to its 2-bit code, or -1 for anything outside
// A/C/G/T (case-insensitive).
var baseCode [256]int8

func init() {
	for i := range baseCode {
		baseCode[i] = -1
	}
	baseCode['A'], baseCode['a'] = 0, 0
	baseCode['T'], baseCode['t'] = 1, 1
	baseCode['C'], baseCode['c'] = 2, 2
	baseCode['G'], baseCode['g'] = 3, 3
}

// Code returns the 2-bit code for a single base, or -1 if ambiguous.
func Code(b byte) int8 { return baseCode[b] }

// Encode packs a window of exactly K bases into a Key. Any ambiguous base
// makes the whole window Invalid; there is no partial encoding.
// The window length is a caller contract, not an input condition.
func Encode(window []byte) Key {
	if len(window) != K {
		panic("kmer: Encode window length must be K")
	}
	var k Key
	for _, b := range window {
		c := baseCode[b]
		if c < 0 {
			return Invalid
		}
		k = k<<2 | Key(c)
	}
	return k
}

// Valid reports whether k encodes a fully determined window.
func (k Key) Valid() bool { return k >= 0 }

var codeBase = [4]byte{'A', 'T', 'C', 'G'}

// String renders the key back into its base string (or "*" for Invalid).
func (k Key) String() string {
	if !k.Valid() {
		return "*"
	}
	var out [K]byte
	for i := K - 1; i >= 0; i-- {
		out[i] = codeBase[k&3]
		k >>= 2
	}
	return string(out[:])
}
