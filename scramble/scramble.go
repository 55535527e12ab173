// Package scramble implements the boot-ROM LFSR transform used to obscure
// the payload embedded in a mod-chip firmware image. The transform is
// involutory: applying it twice returns the original bytes.
package scramble

// prefixLen is the number of zero bytes conceptually prepended to the
// input before running the LFSR; the corresponding output bytes are
// discarded. This lets the registers settle into the same state the
// upstream boot ROM expects before user data begins.
const prefixLen = 0x720

// Bytes runs the boot-ROM LFSR transform over b and returns a new slice of
// the same length. It is its own inverse: Bytes(Bytes(x)) == x for any x,
// including the empty slice.
func Bytes(b []byte) []byte {
	extended := make([]byte, prefixLen+len(b))
	copy(extended[prefixLen:], b)

	var (
		t uint16 = 0x2953
		u uint16 = 0xD9C2
		v uint16 = 0x3FF1
		x byte   = 1

		acc  byte
		nacc int
	)

	for it := 0; it < len(extended); {
		t0 := t & 1
		t1 := (t >> 1) & 1
		u0 := u & 1
		u1 := (u >> 1) & 1
		v0 := v & 1

		x ^= byte(t1) ^ byte(v0)
		x ^= byte(u0) | byte(u1)
		x ^= (byte(t0) ^ byte(u1) ^ byte(v0)) & (byte(t0) ^ byte(u0))

		if t0 == u0 {
			preV0 := v & 1
			v >>= 1
			if preV0 == 1 {
				v ^= 0xB3D0
			}
		}
		if t0 == 0 {
			preU0 := u & 1
			u >>= 1
			if preU0 == 1 {
				u ^= 0xFB10
			}
		}
		preT0 := t & 1
		t >>= 1
		if preT0 == 1 {
			t ^= 0xA740
		}

		nacc = (nacc + 1) % 8
		acc = acc*2 + x
		if nacc == 0 {
			extended[it] ^= acc
			acc = 0
			it++
		}
	}

	return extended[prefixLen:]
}
