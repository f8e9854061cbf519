package configstring

import "fmt"

// Validate checks the invariants from the data model against a parsed
// config string: option ranges stay within 0..128 and don't overlap,
// trigger indices don't collide with option ranges, reserved bit 0 is not
// claimed by either, and every PageItem index names a declared Page. It
// returns warnings rather than an error; callers log and keep the menu as
// parsed, per the config-string fault policy.
func Validate(cs ConfigString) []string {
	var warnings []string
	var ranges [][2]int
	pages := map[int]bool{}
	pageItemIndices := map[int]bool{}

	var walk func(Item)
	walk = func(it Item) {
		switch v := it.(type) {
		case Option:
			if v.Lo < 0 || v.Hi > 128 {
				warnings = append(warnings, fmt.Sprintf("option range %d..%d out of bounds", v.Lo, v.Hi))
			}
			if v.Lo <= 0 && v.Hi > 0 {
				warnings = append(warnings, "option range claims reserved bit 0")
			}
			for _, r := range ranges {
				if v.Lo < r[1] && r[0] < v.Hi {
					warnings = append(warnings, fmt.Sprintf("option range %d..%d overlaps %d..%d", v.Lo, v.Hi, r[0], r[1]))
				}
			}
			ranges = append(ranges, [2]int{v.Lo, v.Hi})
		case Trigger:
			if v.BitIndex == 0 {
				warnings = append(warnings, "trigger claims reserved bit 0")
			}
			for _, r := range ranges {
				if v.BitIndex >= r[0] && v.BitIndex < r[1] {
					warnings = append(warnings, fmt.Sprintf("trigger bit %d collides with option range %d..%d", v.BitIndex, r[0], r[1]))
				}
			}
		case Page:
			pages[v.Index] = true
		case PageItem:
			pageItemIndices[v.Index] = true
			walk(v.Inner)
		case DisableIf:
			walk(v.Inner)
		case DisableUnless:
			walk(v.Inner)
		case HideIf:
			walk(v.Inner)
		case HideUnless:
			walk(v.Inner)
		}
	}

	for _, it := range cs.Menu {
		walk(it)
	}

	for idx := range pageItemIndices {
		if !pages[idx] {
			warnings = append(warnings, fmt.Sprintf("page item references undeclared page %d", idx))
		}
	}

	return warnings
}
