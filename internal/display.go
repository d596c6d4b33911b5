package internal

// Display dimensions in pixels
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Framebuffer is the 64 px x 32 px monochrome display, indexed [row][column].
// A Framebuffer is a value, assigning it copies all pixels.
type Framebuffer [ScreenHeight][ScreenWidth]bool

// Clear turns all pixels off.
func (fb *Framebuffer) Clear() {
	*fb = Framebuffer{}
}

// Pixel returns whether the pixel at column x and row y is set. Coordinates
// wrap around the screen edges.
func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb[wrap(y, ScreenHeight)][wrap(x, ScreenWidth)]
}

// Draw XORs the sprite onto the framebuffer with its top left corner at
// column x, row y. Each sprite byte is one row of 8 pixels, most significant
// bit leftmost. Pixels that fall off an edge wrap around to the opposite one.
// Draw returns whether any set pixel was turned off.
func (fb *Framebuffer) Draw(x, y uint8, sprite []byte) bool {
	collision := false
	for row, spriteByte := range sprite {
		py := (int(y) + row) % ScreenHeight
		for bit := 0; bit < 8; bit++ {
			if spriteByte&(0x80>>bit) == 0 {
				continue
			}
			px := &fb[py][(int(x)+bit)%ScreenWidth]
			if *px {
				collision = true
			}
			*px = !*px
		}
	}
	return collision
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
