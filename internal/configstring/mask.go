package configstring

import "github.com/fpgacore/hostfw/internal/statusbits"

// Mask walks cs's menu tree and returns a statusbits.Bitmap with exactly
// the bits any Option or Trigger claims set — the claimed-bits mask whose
// "has extra" state decides the wire exchange width.
func Mask(cs ConfigString) statusbits.Bitmap {
	var m statusbits.Bitmap
	for _, it := range cs.Menu {
		claimItem(&m, it)
	}
	return m
}

func claimItem(m *statusbits.Bitmap, it Item) {
	switch v := it.(type) {
	case Option:
		for i := v.Lo; i < v.Hi; i++ {
			m.Set(i, true)
		}
	case Trigger:
		m.Set(v.BitIndex, true)
	case DisableIf:
		claimItem(m, v.Inner)
	case DisableUnless:
		claimItem(m, v.Inner)
	case HideIf:
		claimItem(m, v.Inner)
	case HideUnless:
		claimItem(m, v.Inner)
	case PageItem:
		claimItem(m, v.Inner)
	}
}
