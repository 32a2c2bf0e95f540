package panels

// Theme holds the series and quality colors shared by every view.
type Theme struct {
	Waveform  string `yaml:"waveform"`
	Frequency string `yaml:"frequency"`
	Envelope  string `yaml:"envelope"`

	Excellent    string `yaml:"excellent"`
	Good         string `yaml:"good"`
	Questionable string `yaml:"questionable"`
	Poor         string `yaml:"poor"`
}

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		Waveform:     "#3b82f6",
		Frequency:    "#10b981",
		Envelope:     "#8b5cf6",
		Excellent:    "#22c55e",
		Good:         "#3b82f6",
		Questionable: "#f59e0b",
		Poor:         "#ef4444",
	}
}

// Merge returns t with every non-empty field of o applied on top.
func (t Theme) Merge(o Theme) Theme {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&t.Waveform, o.Waveform)
	set(&t.Frequency, o.Frequency)
	set(&t.Envelope, o.Envelope)
	set(&t.Excellent, o.Excellent)
	set(&t.Good, o.Good)
	set(&t.Questionable, o.Questionable)
	set(&t.Poor, o.Poor)
	return t
}

// QualityColor returns the color for a quality class.
func (t Theme) QualityColor(q *Quality) string {
	if q == nil {
		return ""
	}
	switch q.Level {
	case Excellent:
		return t.Excellent
	case Good:
		return t.Good
	case Questionable:
		return t.Questionable
	default:
		return t.Poor
	}
}
