package survey

// Default display parameters, keyed by scale size where the size is
// author-selectable. Captions are Portuguese, matching the product's
// respondent-facing language.

var defaultNPSLabels = MinMaxLabels{Min: "Nada provável", Max: "Extremamente provável"}

var defaultCSATLabels = map[int][]string{
	3: {"Insatisfeito", "Neutro", "Satisfeito"},
	5: {"Muito Insatisfeito", "Insatisfeito", "Neutro", "Satisfeito", "Muito Satisfeito"},
	7: {"Muito Insatisfeito", "Insatisfeito", "Pouco Insatisfeito", "Neutro", "Pouco Satisfeito", "Satisfeito", "Muito Satisfeito"},
}

// csatEmojis decorate each CSAT point; the row length always matches the
// scale size, unlike author-supplied label arrays.
var csatEmojis = map[int][]string{
	3: {"😞", "😐", "😄"},
	5: {"😡", "😞", "😐", "🙂", "😄"},
	7: {"😡", "😠", "😞", "😐", "🙂", "😊", "😄"},
}

var defaultCESLabels = MinMaxLabels{Min: "Muito Fácil", Max: "Muito Difícil"}

var defaultLikertLabels = map[int][]string{
	5: {"Discordo Totalmente", "Discordo", "Neutro", "Concordo", "Concordo Totalmente"},
	7: {"Discordo Totalmente", "Discordo", "Discordo Parcialmente", "Neutro", "Concordo Parcialmente", "Concordo", "Concordo Totalmente"},
}

var defaultEmojiSet = []string{"😡", "😞", "😐", "🙂", "😄"}

// EmojiPresets are the curated glyph sets offered by the question editor.
// The "emotions" set doubles as the default when no emojiSet is configured.
var EmojiPresets = map[string][]string{
	"emotions":     {"😡", "😞", "😐", "🙂", "😄"},
	"satisfaction": {"😠", "😕", "😐", "😊", "😍"},
	"quality":      {"👎", "😕", "😐", "👍", "⭐"},
}

const (
	defaultRatingMax    = 5
	defaultCSATScale    = 5
	defaultCESScale     = 7
	defaultLikertScale  = 5
	defaultLikeLabel    = "Gostei"
	defaultDislikeLabel = "Não gostei"
)

// npsRange is fixed by the methodology: eleven buttons, 0 through 10.
const npsRange = 11
