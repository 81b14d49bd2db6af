package domain

// GlobalStyles is the theme applied across the whole page.
type GlobalStyles struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	FontFamily      string `json:"fontFamily"`
	BackgroundColor string `json:"backgroundColor"`
}

// SectionStyles are per-section overrides. Empty fields fall back to
// GlobalStyles at render time; the fallback is never baked into the document.
type SectionStyles struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	Padding         string `json:"padding,omitempty"`
	Margin          string `json:"margin,omitempty"`
}

// DefaultGlobalStyles returns the initial theme for a fresh document.
func DefaultGlobalStyles() GlobalStyles {
	return GlobalStyles{
		PrimaryColor:    "#155dfc",
		SecondaryColor:  "#06B6D4",
		FontFamily:      "Inter",
		BackgroundColor: "#FFFFFF",
	}
}

// DefaultSectionStyles returns the styles a freshly added section gets.
func DefaultSectionStyles() *SectionStyles {
	return &SectionStyles{
		BackgroundColor: "transparent",
		TextColor:       "#1F2937",
		Padding:         "2rem",
		Margin:          "0",
	}
}
