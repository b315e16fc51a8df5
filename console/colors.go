package console

// ANSI-style palette in XRGB8888 (0x00RRGGBB), Dracula-like tones.
const (
	AnsiBlack   uint32 = 0x00111111 // Dark gray/black
	AnsiRed     uint32 = 0x00FF9DA4
	AnsiGreen   uint32 = 0x00D1F1A9
	AnsiYellow  uint32 = 0x00FFEEAC
	AnsiBlue    uint32 = 0x00BBDAFF
	AnsiMagenta uint32 = 0x00EBBBFF
	AnsiCyan    uint32 = 0x0099FFFF
	AnsiWhite   uint32 = 0x00CCCCCC // Light gray

	AnsiBrightBlack uint32 = 0x00333333
	AnsiBrightGreen uint32 = 0x00B8F171
	AnsiBrightWhite uint32 = 0x00FFFFFF

	MidnightBlue uint32 = 0x00191B70 // RGB(25, 27, 112)
)

// ColorScheme holds the three colors the console paints with.
type ColorScheme struct {
	Background uint32
	Text       uint32
	Caret      uint32
}

// DefaultColorScheme is bright green on midnight blue with a light caret.
var DefaultColorScheme = ColorScheme{
	Background: MidnightBlue,
	Text:       AnsiBrightGreen,
	Caret:      AnsiWhite,
}

// ClassicColorScheme is green on black.
var ClassicColorScheme = ColorScheme{
	Background: AnsiBlack,
	Text:       AnsiGreen,
	Caret:      AnsiGreen,
}
