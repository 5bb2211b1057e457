package ui

// Config contains TUI-specific configuration.
type Config struct {
	SourceLang string
	TargetLang string

	EnableMouse bool
	Width       uint

	// AutoSubmit enables the typing-pause debounce. Explicit enter always
	// submits regardless.
	AutoSubmit bool `env:"GANKSPEAK_AUTO_SUBMIT" envDefault:"true"`
}
