package mask

import (
	"fmt"

	"github.com/gogpu/alphaloop/internal/pixbuf"
)

func mismatch(tex *pixbuf.Buffer, m *Mask) error {
	return fmt.Errorf("%w: texture %dx%d vs mask %dx%d", pixbuf.ErrDimensionMismatch,
		tex.Width(), tex.Height(), m.width, m.height)
}
