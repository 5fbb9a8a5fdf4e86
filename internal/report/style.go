package report

// Style holds the ANSI sequences used by the reporter. It is built once from
// the color flag and never changes afterwards.
type Style struct {
	red    string
	yellow string
	green  string
	cyan   string
	reset  string
}

// NewStyle returns a colored style, or a style with every sequence empty
func NewStyle(color bool) Style {
	if !color {
		return Style{}
	}
	return Style{
		red:    "\033[31m",
		yellow: "\033[33m",
		green:  "\033[32m",
		cyan:   "\033[36m",
		reset:  "\033[0m",
	}
}

func (s Style) Red(text string) string    { return s.wrap(s.red, text) }
func (s Style) Yellow(text string) string { return s.wrap(s.yellow, text) }
func (s Style) Green(text string) string  { return s.wrap(s.green, text) }
func (s Style) Cyan(text string) string   { return s.wrap(s.cyan, text) }

func (s Style) wrap(code, text string) string {
	if code == "" {
		return text
	}
	return code + text + s.reset
}
