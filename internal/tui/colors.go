package tui

// Color constants for the awaybot watch theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Header, accent elements
	ColorAccentBright = "#A78BFA" // Highlights

	// State Colors
	ColorError   = "#EF4444" // Overdue sessions
	ColorSuccess = "#22C55E" // Plenty of time left
	ColorWarning = "#F59E0B" // Final minute
)
