package ui

// Color accessors resolve against the active theme at call time, so a
// theme change takes effect immediately across the presentation layer.

// ColorCyan returns the primary accent color code.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorGrey returns the secondary color code.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorGreen returns the success color code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorMagenta returns the info color code.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorBold returns the bold text code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the formatting reset code.
func ColorReset() string { return GetCurrentTheme().Reset }
