package configstring

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseWarning is a non-fatal diagnostic: an unrecognized first byte or a
// malformed sub-field causes the offending line to be skipped, not the
// whole parse to fail.
type ParseWarning struct {
	Line    int
	Message string
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Parse tokenizes a semicolon-delimited config string into a name, a
// settings record, and a menu tree, threading a 1-based line counter
// through the menu-item fields so an unindexed LoadFile defaults to its
// line's position.
func Parse(s string) (ConfigString, []ParseWarning) {
	fields := strings.Split(s, ";")

	var cs ConfigString
	var warnings []ParseWarning

	if len(fields) > 0 {
		cs.Name = fields[0]
	}
	if len(fields) > 1 {
		cs.Settings = Settings{Raw: fields[1]}
	}

	line := 0
	for _, field := range fields[minInt(2, len(fields)):] {
		line++
		if field == "" {
			cs.Menu = append(cs.Menu, Empty{})
			continue
		}

		item, defaultNames, defaultPositions, err := parseLine(field, line)
		if err != nil {
			warnings = append(warnings, ParseWarning{Line: line, Message: err.Error()})
			continue
		}
		if defaultNames != nil {
			cs.DefaultButtonNames = defaultNames
			continue
		}
		if defaultPositions != nil {
			cs.DefaultButtonPositions = defaultPositions
			continue
		}
		cs.Menu = append(cs.Menu, item)
	}

	return cs, warnings
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parseLine dispatches on the field's first byte(s) per the grammar table.
// A non-nil defaultNames/defaultPositions return means the line was a
// "jn"/"jp" default-mapping declaration, which has no menu-item variant of
// its own.
func parseLine(field string, line int) (item Item, defaultNames, defaultPositions []string, err error) {
	switch {
	case field == "DIP":
		return Dip{}, nil, nil, nil

	case strings.HasPrefix(field, "-"):
		return parseLabelOnly(field[1:], func(label string, has bool) Item {
			return Empty{Label: label, HasLabel: has}
		}), nil, nil, nil

	case strings.HasPrefix(field, "C"):
		return parseLabelOnly(field[1:], func(label string, has bool) Item {
			return Cheat{Label: label, HasLabel: has}
		}), nil, nil, nil

	case strings.HasPrefix(field, "D"):
		it, e := parseConditional(field[1:], line, func(mask int, inner Item) Item {
			return DisableIf{Mask: mask, Inner: inner}
		})
		return it, nil, nil, e

	case strings.HasPrefix(field, "d"):
		it, e := parseConditional(field[1:], line, func(mask int, inner Item) Item {
			return DisableUnless{Mask: mask, Inner: inner}
		})
		return it, nil, nil, e

	case strings.HasPrefix(field, "H"):
		it, e := parseConditional(field[1:], line, func(mask int, inner Item) Item {
			return HideIf{Mask: mask, Inner: inner}
		})
		return it, nil, nil, e

	case strings.HasPrefix(field, "h"):
		it, e := parseConditional(field[1:], line, func(mask int, inner Item) Item {
			return HideUnless{Mask: mask, Inner: inner}
		})
		return it, nil, nil, e

	case strings.HasPrefix(field, "FC"):
		it, e := parseLoadFile(field[2:], line, true)
		return it, nil, nil, e

	case strings.HasPrefix(field, "F"):
		it, e := parseLoadFile(field[1:], line, false)
		return it, nil, nil, e

	case strings.HasPrefix(field, "S"):
		it, e := parseMountSdCard(field[1:])
		return it, nil, nil, e

	case strings.HasPrefix(field, "O"):
		it, e := parseOption(field[1:], false)
		return it, nil, nil, e

	case strings.HasPrefix(field, "o"):
		it, e := parseOption(field[1:], true)
		return it, nil, nil, e

	case strings.HasPrefix(field, "R"):
		it, e := parseTrigger(field[1:], true, false)
		return it, nil, nil, e

	case strings.HasPrefix(field, "r"):
		it, e := parseTrigger(field[1:], true, true)
		return it, nil, nil, e

	case strings.HasPrefix(field, "T"):
		it, e := parseTrigger(field[1:], false, false)
		return it, nil, nil, e

	case strings.HasPrefix(field, "t"):
		it, e := parseTrigger(field[1:], false, true)
		return it, nil, nil, e

	case strings.HasPrefix(field, "I"):
		return parseInfo(field[1:]), nil, nil, nil

	case strings.HasPrefix(field, "P"):
		it, e := parsePage(field[1:], line)
		return it, nil, nil, e

	case strings.HasPrefix(field, "J"):
		it, e := parseJoystickButtons(field[1:])
		return it, nil, nil, e

	case strings.HasPrefix(field, "jn"):
		return nil, splitComma(field[2:]), nil, nil

	case strings.HasPrefix(field, "jp"):
		return nil, nil, splitComma(field[2:]), nil

	case strings.HasPrefix(field, "V"):
		return parseVersion(field[1:]), nil, nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unrecognized menu item %q", field)
	}
}

func splitComma(s string) []string {
	s = strings.TrimPrefix(s, ",")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func parseLabelOnly(rest string, build func(label string, has bool) Item) Item {
	if rest == "" {
		return build("", false)
	}
	rest = strings.TrimPrefix(rest, ",")
	return build(rest, true)
}

func parseConditional(rest string, line int, build func(mask int, inner Item) Item) (Item, error) {
	mask, tail, err := takeLeadingInt(rest)
	if err != nil {
		return nil, fmt.Errorf("conditional mask: %w", err)
	}
	inner, _, _, err := parseLine(tail, line)
	if err != nil {
		return nil, fmt.Errorf("conditional inner item: %w", err)
	}
	return build(mask, inner), nil
}

func parseVersion(rest string) Item {
	return Version{Text: strings.TrimPrefix(rest, ",")}
}

func parseInfo(rest string) Item {
	return Info{Lines: splitComma(rest)}
}

func parseOption(rest string, highHalf bool) (Item, error) {
	lo, hi, tail, err := takeBitRange(rest)
	if err != nil {
		return nil, fmt.Errorf("option range: %w", err)
	}
	if highHalf {
		lo += 32
		hi += 32
	}
	fields := splitComma(tail)
	opt := Option{Lo: lo, Hi: hi}
	if len(fields) > 0 {
		opt.Label = fields[0]
	}
	if len(fields) > 1 {
		opt.Choices = fields[1:]
	}
	return opt, nil
}

func parseTrigger(rest string, closesOSD, highHalf bool) (Item, error) {
	idx, tail, err := takeBitIndex(rest)
	if err != nil {
		return nil, fmt.Errorf("trigger index: %w", err)
	}
	if highHalf {
		idx += 32
	}
	tail = strings.TrimPrefix(tail, ",")
	return Trigger{ClosesOSD: closesOSD, BitIndex: idx, Label: tail}, nil
}

func parseLoadFile(rest string, line int, remember bool) (Item, error) {
	lf := LoadFile{Remember: remember}
	if strings.HasPrefix(rest, "S") {
		lf.SaveSupport = true
		rest = rest[1:]
	}

	idx, tail, hadIdx := takeLeadingIntOptional(rest)
	if hadIdx {
		lf.SlotIndex = idx
	} else {
		lf.SlotIndex = line
	}

	fields := strings.Split(strings.TrimPrefix(tail, ","), ",")
	if len(fields) > 0 {
		lf.Extensions = splitExtensions(fields[0])
	}
	if len(fields) > 1 && fields[1] != "" {
		lf.Label = fields[1]
		lf.HasLabel = true
	}
	if len(fields) > 2 && fields[2] != "" {
		addr, err := strconv.ParseUint(fields[2], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("load address %q: %w", fields[2], err)
		}
		lf.LoadAddress = uint32(addr)
		lf.HasAddress = true
	}
	return lf, nil
}

func parseMountSdCard(rest string) (Item, error) {
	idx, tail, _ := takeLeadingIntOptional(rest)
	fields := strings.Split(strings.TrimPrefix(tail, ","), ",")
	m := MountSdCard{Slot: idx}
	if len(fields) > 0 {
		m.Extensions = splitExtensions(fields[0])
	}
	if len(fields) > 1 && fields[1] != "" {
		m.Label = fields[1]
		m.HasLabel = true
	}
	return m, nil
}

func splitExtensions(s string) []string {
	var out []string
	for len(s) >= 3 {
		out = append(out, s[:3])
		s = s[3:]
	}
	return out
}

func parsePage(rest string, line int) (Item, error) {
	idx, tail, err := takeLeadingInt(rest)
	if err != nil {
		return nil, fmt.Errorf("page index: %w", err)
	}
	if strings.HasPrefix(tail, ",") {
		return Page{Index: idx, Label: tail[1:]}, nil
	}
	inner, _, _, err := parseLine(tail, line)
	if err != nil {
		return nil, fmt.Errorf("page item inner: %w", err)
	}
	return PageItem{Index: idx, Inner: inner}, nil
}

func parseJoystickButtons(rest string) (Item, error) {
	locksKeyboard := !strings.HasPrefix(rest, "1")
	rest = strings.TrimPrefix(rest, "1")
	return JoystickButtons{
		LocksKeyboard: locksKeyboard,
		Names:         splitComma(rest),
	}, nil
}
