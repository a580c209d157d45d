package styles

// Markers used as status line prefixes.
var (
	IconComplete = "✓"
	IconOverdue  = "!"
	IconFailed   = "✗"
)
