package debug

// RenderStartData contains information about the start of a render operation.
type RenderStartData struct {
	Text       string   `json:"text"`
	TextLength int      `json:"text_length"`
	CharHeight int      `json:"char_height"`
	Hardblank  rune     `json:"hardblank"`
	Width      int      `json:"width"`
	Align      string   `json:"align"`
	Mode       int      `json:"mode"`
	ModeRules  []string `json:"mode_rules"`
	FullWidth  bool     `json:"full_width"`
	RTL        bool     `json:"rtl"`
	Paragraph  bool     `json:"paragraph"`
}

// RenderEndData contains information about the end of a render operation.
type RenderEndData struct {
	TotalLines   int   `json:"total_lines"`
	TotalRunes   int   `json:"total_runes"`
	ElapsedMs    int64 `json:"elapsed_ms"`
	BytesWritten int   `json:"bytes_written"`
}

// GlyphPushData describes one glyph appended to the composite.
type GlyphPushData struct {
	Index     int  `json:"index"`
	Rune      rune `json:"rune"`
	Width     int  `json:"width"`
	Fallback  bool `json:"fallback,omitempty"`
	Amount    int  `json:"amount"`
	FullWidth bool `json:"full_width,omitempty"`
	LenAfter  int  `json:"len_after"`
}

// SmushAmountRowData contains per-row overlap calculation details.
type SmushAmountRowData struct {
	GlyphIdx     int    `json:"glyph_idx"`
	Row          int    `json:"row"`
	TrailingLeft int    `json:"trailing_left"`
	LeadingRight int    `json:"leading_right"`
	Ch1          rune   `json:"ch1"`
	Ch2          rune   `json:"ch2"`
	AmountBefore int    `json:"amount_before"`
	AmountAfter  int    `json:"amount_after"`
	Reason       string `json:"reason"` // "none", "blank", "smushable"
}

// SmushDecisionData contains information about a smush decision.
type SmushDecisionData struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Lch    rune   `json:"lch"`
	Rch    rune   `json:"rch"`
	Result rune   `json:"result"`
	Rule   string `json:"rule"`
}

// WrapData describes a wrapper decision.
type WrapData struct {
	Reason    string `json:"reason"` // "line_full", "flush", "forced"
	Token     string `json:"token"`
	BufferLen int    `json:"buffer_len"`
	Len       int    `json:"len"`
	Width     int    `json:"width"`
}

// FlushData contains information about a line flush.
type FlushData struct {
	LineNumber int    `json:"line_number"`
	Width      int    `json:"width"`
	Padding    int    `json:"padding"`
	Align      string `json:"align"`
}

// FontHeaderData contains parsed font header information.
type FontHeaderData struct {
	Variant      string `json:"variant"`
	Hardblank    rune   `json:"hardblank"`
	Height       int    `json:"height"`
	Baseline     int    `json:"baseline"`
	MaxLength    int    `json:"max_length"`
	OldLayout    int    `json:"old_layout"`
	Layout       int    `json:"layout"`
	LayoutSet    bool   `json:"layout_set"`
	RTL          bool   `json:"rtl"`
	CommentLines int    `json:"comment_lines"`
	Glyphs       int    `json:"glyphs"`
	Warnings     int    `json:"warnings,omitempty"`
}
