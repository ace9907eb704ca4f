package scene

// Theme is the color palette of the replay. Colors are hex strings.
type Theme struct {
	Background string
	Sidebar    string
	Panel      string
	Border     string
	Pitch      string
	Line       string
	Text       string
	Muted      string
	Primary    string

	Home      string
	Away      string
	Highlight string
	Alert     string

	HomeHeat []string // Low to high density
	AwayHeat []string
}

// DefaultTheme is the dark "tactical" palette.
var DefaultTheme = Theme{
	Background: "#151515",
	Sidebar:    "#101010",
	Panel:      "#222222",
	Border:     "#333333",
	Pitch:      "#1e1e1e",
	Line:       "#444444",
	Text:       "#ffffff",
	Muted:      "#808080",
	Primary:    "#2f80ed",

	Home:      "#00ffc2",
	Away:      "#ff0055",
	Highlight: "#00e5ff",
	Alert:     "#ff3b30",

	HomeHeat: []string{"#fee5d9", "#fcae91", "#fb6a4a", "#de2d26", "#a50f15"},
	AwayHeat: []string{"#eff3ff", "#bdd7e7", "#6baed6", "#3182bd", "#08519c"},
}

// team returns the home color when home is true, the away color otherwise.
func (t Theme) team(home bool) string {
	if home {
		return t.Home
	}
	return t.Away
}

// spread resamples palette to n colors, keeping its first and last entries.
func spread(palette []string, n int) []string {
	if n <= 0 || len(palette) == 0 {
		return nil
	}
	out := make([]string, n)
	for k := range n {
		i := 0
		if n > 1 {
			i = k * (len(palette) - 1) / (n - 1)
		}
		out[k] = palette[i]
	}
	return out
}
