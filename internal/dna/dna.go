// internal/dna/dna.go
package dna

var complement [256]byte

func init() {
	complement['A'] = 'T'; complement['T'] = 'A'
	complement['C'] = 'G'; complement['G'] = 'C'
	complement['a'] = 't'; complement['t'] = 'a'
	complement['c'] = 'g'; complement['g'] = 'c'
	complement['N'] = 'N'; complement['n'] = 'n'
}

// RevComp returns the reverse complement of seq as a new slice.
// Bases without a defined complement become 'N'.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[n-1-i]
		c := complement[b]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return out
}
