package ppu

// masterPalette is the fixed 64-entry RGB table the 2C02 outputs through
// its DAC. Indexed by the 6-bit palette value looked up via $3F00-$3F1F.
// https://www.nesdev.org/wiki/PPU_palettes#2C02
var masterPalette = [64][3]uint8{
	{0x62, 0x62, 0x62}, {0x00, 0x2C, 0x9D}, {0x1A, 0x1F, 0xC2}, {0x39, 0x13, 0xBE},
	{0x5C, 0x0B, 0x91}, {0x72, 0x0A, 0x4E}, {0x6E, 0x14, 0x00}, {0x56, 0x23, 0x00},
	{0x33, 0x35, 0x00}, {0x0C, 0x42, 0x00}, {0x00, 0x47, 0x00}, {0x00, 0x43, 0x23},
	{0x00, 0x39, 0x5C}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xAB, 0xAB, 0xAB}, {0x0D, 0x57, 0xE6}, {0x42, 0x41, 0xFF}, {0x72, 0x2C, 0xFF},
	{0xA0, 0x1E, 0xD6}, {0xBC, 0x1D, 0x82}, {0xB9, 0x29, 0x21}, {0x99, 0x3F, 0x00},
	{0x6B, 0x59, 0x00}, {0x3C, 0x6D, 0x00}, {0x1D, 0x77, 0x00}, {0x0E, 0x75, 0x37},
	{0x0E, 0x68, 0x82}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFF, 0xFF}, {0x54, 0xA4, 0xFF}, {0x82, 0x8C, 0xFF}, {0xB9, 0x71, 0xFF},
	{0xEB, 0x61, 0xFF}, {0xFF, 0x5A, 0xD6}, {0xFF, 0x61, 0x72}, {0xFF, 0x78, 0x1E},
	{0xE1, 0x94, 0x00}, {0xAE, 0xAE, 0x00}, {0x7B, 0xBE, 0x00}, {0x5C, 0xC8, 0x43},
	{0x4D, 0xC6, 0x93}, {0x4E, 0x4E, 0x4E}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFF, 0xFF}, {0xB8, 0xDA, 0xFF}, {0xCC, 0xCC, 0xFF}, {0xE6, 0xC1, 0xFF},
	{0xF9, 0xBA, 0xFF}, {0xFF, 0xB8, 0xEE}, {0xFF, 0xBA, 0xC6}, {0xFF, 0xC6, 0xA6},
	{0xF2, 0xD6, 0x96}, {0xDD, 0xE3, 0x91}, {0xC6, 0xED, 0x9A}, {0xB6, 0xEE, 0xB3},
	{0xAC, 0xEC, 0xD2}, {0xB2, 0xB2, 0xB2}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}
