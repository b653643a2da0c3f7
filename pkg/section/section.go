// Package section names the views reachable from the sidebar and tracks which
// one is active.
package section

// Tag identifies a section.
type Tag string

const (
	// Root is the implicit default and renders the main chat.
	Root                 Tag = ""
	MainChat             Tag = "main-chat"
	CalibrationWorkspace Tag = "calibration-workspace"
	DefineColorBounds    Tag = "define-color-bounds"
)

// Variant is the data that distinguishes one section's chat panel from another.
type Variant struct {
	Tag    Tag
	Title  string
	Banner string
}

var catalog = []Variant{
	{Tag: MainChat, Title: "Main Chat", Banner: "How can I help you today?"},
	{Tag: CalibrationWorkspace, Title: "Calibration Workspace", Banner: "This is the Calibration Workspace Section"},
	{Tag: DefineColorBounds, Title: "Define Color Bounds", Banner: "This is the Define Color Bounds Section"},
}

// Catalog returns the known sections in sidebar order.
func Catalog() []Variant {
	out := make([]Variant, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the variant for tag. Root resolves to the main chat.
// Unknown tags report false and have nothing to render.
func Lookup(tag Tag) (Variant, bool) {
	if tag == Root {
		tag = MainChat
	}
	for _, v := range catalog {
		if v.Tag == tag {
			return v, true
		}
	}
	return Variant{}, false
}

// Known reports whether tag names a section.
func Known(tag Tag) bool {
	_, ok := Lookup(tag)
	return ok
}
