// Package configstring tokenizes and parses a core's self-description —
// its status-bit layout, menu items, file-loading slots, button set, and
// joystick mapping — into a typed menu tree and a claimed-bits mask.
// Grounded on the reference's config_string/parser.rs grammar.
package configstring

// Item is the MenuItem sum type. Each concrete type below is one variant;
// a type switch on the concrete value recovers which one a given Item is.
type Item interface {
	isItem()
}

// Empty is a visual separator, optionally labeled.
type Empty struct {
	Label string
	HasLabel bool
}

func (Empty) isItem() {}

// Cheat is a cheat-code entry, optionally labeled.
type Cheat struct {
	Label    string
	HasLabel bool
}

func (Cheat) isItem() {}

// Dip marks a DIP-switch block; the reference carries no further fields.
type Dip struct{}

func (Dip) isItem() {}

// DisableIf disables (grays out) Inner when the core's visibility state,
// masked by Mask, is nonzero.
type DisableIf struct {
	Mask  int
	Inner Item
}

func (DisableIf) isItem() {}

// DisableUnless is DisableIf's complement: disables Inner when the mask is
// zero.
type DisableUnless struct {
	Mask  int
	Inner Item
}

func (DisableUnless) isItem() {}

// HideIf and HideUnless behave like DisableIf/DisableUnless but remove the
// item from layout entirely rather than graying it out.
type HideIf struct {
	Mask  int
	Inner Item
}

func (HideIf) isItem() {}

type HideUnless struct {
	Mask  int
	Inner Item
}

func (HideUnless) isItem() {}

// LoadFile declares a file-loading menu slot.
type LoadFile struct {
	Remember    bool
	SaveSupport bool
	SlotIndex   int
	Extensions  []string
	Label       string
	HasLabel    bool
	LoadAddress uint32
	HasAddress  bool
}

func (LoadFile) isItem() {}

// MountSdCard declares an SD-card image mount slot.
type MountSdCard struct {
	Slot       int
	Extensions []string
	Label      string
	HasLabel   bool
}

func (MountSdCard) isItem() {}

// Option is a status-bitmap-backed multiple-choice setting. Lo/Hi are
// half-open and lie within 0..128.
type Option struct {
	Lo, Hi  int
	Label   string
	Choices []string
}

func (Option) isItem() {}

// Trigger is a pulsed single bit, optionally one that also closes the OSD
// when activated.
type Trigger struct {
	ClosesOSD bool
	BitIndex  int
	Label     string
}

func (Trigger) isItem() {}

// Page is a named menu page. It carries only its index and label; it does
// not hold its items: the PageItem entries that place items on it stay in
// the flat menu list and name the page by Index.
type Page struct {
	Index int
	Label string
}

func (Page) isItem() {}

// PageItem places Inner onto the page with the given Index.
type PageItem struct {
	Index int
	Inner Item
}

func (PageItem) isItem() {}

// JoystickButtons declares the core's button-name list for one or more
// players.
type JoystickButtons struct {
	LocksKeyboard bool
	Names         []string
}

func (JoystickButtons) isItem() {}

// Info is a block of informational lines, rendered verbatim.
type Info struct {
	Lines []string
}

func (Info) isItem() {}

// Version carries the core's version string.
type Version struct {
	Text string
}

func (Version) isItem() {}

// Settings is the config string's second field. The reference derives a
// structured record (DIP/volume/timing bits) from it; nothing downstream
// of this firmware currently interprets those bits, so it is kept as the
// opaque raw token the field actually contains.
type Settings struct {
	Raw string
}

// ConfigString is the fully parsed result of one core self-description.
type ConfigString struct {
	Name     string
	Settings Settings
	Menu     []Item

	// DefaultButtonNames / DefaultButtonPositions capture the "jn,..." /
	// "jp,..." lines: these configure the default button-map overlay
	// rather than appearing in the menu tree as their own item, since the
	// menu item sum type has no variant for them.
	DefaultButtonNames     []string
	DefaultButtonPositions []string
}
