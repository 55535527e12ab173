package uf2

// Memory layout constants, bit-exact with the base firmware's linker
// script. FlashBase and FlashSize describe the base firmware's own flash
// region; PayloadBase and PayloadRegionSize describe where the wrapped DOL
// payload is expected to live, immediately after it.
const (
	FlashBase         uint32 = 0x10000000
	FlashSize         uint32 = 0x00080000
	PayloadBase       uint32 = 0x10080000
	PayloadRegionSize uint32 = 0x00180000
)
