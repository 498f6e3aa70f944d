package survey

// Settings is the per-type resolved display configuration produced by
// Resolve. Each question type carries only its own payload, so call
// sites never read a field left behind by a prior type change.
type Settings interface {
	settingsType() QuestionType
}

type TextSettings struct {
	Placeholder string
	HelpText    string
	Required    bool
}

type NPSSettings struct {
	MinLabel string
	MaxLabel string
}

type CSATSettings struct {
	Scale  int // 3, 5 or 7
	Labels []string
	Emojis []string
}

type CESSettings struct {
	Scale    int // 5 or 7
	MinLabel string
	MaxLabel string
}

// RatingSettings covers stars and hearts; Icon distinguishes them.
type RatingSettings struct {
	Icon string // "star" or "heart"
	Max  int
}

type EmojiSettings struct {
	Glyphs []string
}

type ChoiceSettings struct {
	Options       []string
	MinSelections int
	MaxSelections int
	Multiple      bool
}

type LikeDislikeSettings struct {
	LikeLabel    string
	DislikeLabel string
}

type LikertSettings struct {
	Scale  int // 5 or 7
	Labels []string
}

type MatrixSettings struct {
	Rows    []string
	Columns []string
}

func (TextSettings) settingsType() QuestionType        { return TypeText }
func (NPSSettings) settingsType() QuestionType         { return TypeNPS }
func (CSATSettings) settingsType() QuestionType        { return TypeCSAT }
func (CESSettings) settingsType() QuestionType         { return TypeCES }
func (s RatingSettings) settingsType() QuestionType {
	if s.Icon == "heart" {
		return TypeHearts
	}
	return TypeStars
}
func (EmojiSettings) settingsType() QuestionType       { return TypeEmojis }
func (s ChoiceSettings) settingsType() QuestionType {
	if s.Multiple {
		return TypeMultipleChoice
	}
	return TypeSingleChoice
}
func (LikeDislikeSettings) settingsType() QuestionType { return TypeLikeDislike }
func (LikertSettings) settingsType() QuestionType      { return TypeLikert }
func (MatrixSettings) settingsType() QuestionType      { return TypeMatrix }

// LabelAt returns labels[i], or "" when i is out of range. Author-edited
// label arrays may be shorter than the active scale; uncovered positions
// render blank instead of panicking.
func LabelAt(labels []string, i int) string {
	if i < 0 || i >= len(labels) {
		return ""
	}
	return labels[i]
}

// Resolve computes the effective display parameters for a question type
// from a partial configuration. It is pure: cfg is never mutated, absent
// fields fall back to type-specific defaults, and repeated calls with the
// same input yield the same output. A nil cfg resolves entirely to
// defaults. Unrecognized types resolve as text.
func Resolve(t QuestionType, cfg *ScaleConfig) Settings {
	if cfg == nil {
		cfg = &ScaleConfig{}
	}
	switch t {
	case TypeText:
		return TextSettings{Placeholder: cfg.Placeholder, HelpText: cfg.HelpText, Required: cfg.IsRequired}
	case TypeNPS:
		labels := defaultNPSLabels
		if cfg.NPSLabels != nil {
			labels = *cfg.NPSLabels
		}
		return NPSSettings{MinLabel: labels.Min, MaxLabel: labels.Max}
	case TypeCSAT:
		scale := normalizeScale(cfg.CSATScale, defaultCSATScale, 3, 5, 7)
		labels := cfg.CSATLabels
		if len(labels) == 0 {
			labels = defaultCSATLabels[scale]
		}
		return CSATSettings{Scale: scale, Labels: labels, Emojis: csatEmojis[scale]}
	case TypeCES:
		scale := normalizeScale(cfg.CESScale, defaultCESScale, 5, 7)
		labels := defaultCESLabels
		if cfg.CESLabels != nil {
			labels = *cfg.CESLabels
		}
		return CESSettings{Scale: scale, MinLabel: labels.Min, MaxLabel: labels.Max}
	case TypeStars:
		return RatingSettings{Icon: "star", Max: normalizeMax(cfg.MaxValue)}
	case TypeHearts:
		return RatingSettings{Icon: "heart", Max: normalizeMax(cfg.MaxValue)}
	case TypeEmojis:
		glyphs := cfg.EmojiSet
		if len(glyphs) == 0 {
			glyphs = defaultEmojiSet
		}
		return EmojiSettings{Glyphs: glyphs}
	case TypeSingleChoice:
		return resolveChoice(cfg, false)
	case TypeMultipleChoice:
		return resolveChoice(cfg, true)
	case TypeLikeDislike:
		like := cfg.LikeLabel
		if like == "" {
			like = defaultLikeLabel
		}
		dislike := cfg.DislikeLabel
		if dislike == "" {
			dislike = defaultDislikeLabel
		}
		return LikeDislikeSettings{LikeLabel: like, DislikeLabel: dislike}
	case TypeLikert:
		scale := normalizeScale(cfg.LikertScale, defaultLikertScale, 5, 7)
		labels := cfg.LikertLabels
		if len(labels) == 0 {
			labels = defaultLikertLabels[scale]
		}
		return LikertSettings{Scale: scale, Labels: labels}
	case TypeMatrix:
		return MatrixSettings{Rows: cfg.MatrixRows, Columns: cfg.MatrixColumns}
	default:
		return TextSettings{Placeholder: cfg.Placeholder, HelpText: cfg.HelpText, Required: cfg.IsRequired}
	}
}

func resolveChoice(cfg *ScaleConfig, multiple bool) ChoiceSettings {
	s := ChoiceSettings{Options: cfg.Options, Multiple: multiple}
	if multiple {
		s.MinSelections = cfg.MinSelections
		if s.MinSelections < 0 {
			s.MinSelections = 0
		}
		s.MaxSelections = cfg.MaxSelections
		if s.MaxSelections <= 0 {
			s.MaxSelections = len(cfg.Options)
		}
	}
	return s
}

// normalizeScale keeps author-selected sizes within the set the type
// supports; anything else falls back to the type default so the keyed
// label tables always have a matching row.
func normalizeScale(v, fallback int, allowed ...int) int {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}

func normalizeMax(v int) int {
	if v <= 0 {
		return defaultRatingMax
	}
	return v
}
