package styles

// Nerd Font glyphs. Without a Nerd Font they render as boxes.
const (
	IconCheck        = "\uf00c"
	IconX            = "\uf00d"
	IconWarning      = "\uf071"
	IconTrash        = "\uf1f8"
	IconSpinner      = "\uf110"
	IconSessionStack = "\uf24d"
)
