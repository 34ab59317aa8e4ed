package judgment

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf16"

	"beadloom/domain/core/aggregates"
	"beadloom/domain/core/entities"
	"beadloom/domain/core/valueobjects"
)

// The content tier reads the text of the board instead of its shape. It never
// feeds the sealed totals; the judge surfaces it through dialogue prompts and
// the insights query so players can see where the prose, not the topology,
// is weak.

// ContentScores holds the four text-aware heuristics for one player.
type ContentScores struct {
	Resonance  float64 `json:"resonance"`
	Novelty    float64 `json:"novelty"`
	Integrity  float64 `json:"integrity"`
	Aesthetics float64 `json:"aesthetics"`
}

// ContentScoresFor computes all four heuristics for every player.
func ContentScoresFor(m *aggregates.Match) map[string]ContentScores {
	out := make(map[string]ContentScores, len(m.Players()))
	for _, p := range m.Players() {
		out[p.ID()] = ContentScores{
			Resonance:  ContentResonance(m, p.ID()),
			Novelty:    ContentNovelty(m, p.ID()),
			Integrity:  ContentIntegrity(m, p.ID()),
			Aesthetics: ContentAesthetics(m, p.ID()),
		}
	}
	return out
}

// ContentResonance is the mean Jaccard token-set overlap between the endpoint
// beads of every edge touching the player's beads. Edgeless players score 0.
func ContentResonance(m *aggregates.Match, playerID string) float64 {
	sum := 0.0
	count := 0
	for _, e := range playerEdges(m, playerID) {
		from, okF := m.Bead(e.From)
		to, okT := m.Bead(e.To)
		if !okF || !okT {
			continue
		}
		sum += jaccard(tokenSet(from.Text()), tokenSet(to.Text()))
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// ContentNovelty shingles every bead's body into overlapping 3-token windows
// and scores the player by the share of their shingles that appear in exactly
// one bead on the whole board. A player with no shingles scores 0.
func ContentNovelty(m *aggregates.Match, playerID string) float64 {
	holders := make(map[uint32]int)
	perBead := make(map[string]map[uint32]bool)
	for _, b := range m.Beads() {
		hashes := shingleHashes(b.Content().Body())
		perBead[b.ID()] = hashes
		for h := range hashes {
			holders[h]++
		}
	}

	total := 0
	unique := 0
	for _, b := range m.Beads() {
		if b.OwnerID() != playerID {
			continue
		}
		for h := range perBead[b.ID()] {
			total++
			if holders[h] == 1 {
				unique++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(unique) / float64(total)
}

var negationMarkers = regexp.MustCompile(`(?i)\b(not|no|never|cannot|neither|nor|but|however|although|yet)\b|n't\b`)

var antonymPairs = [][2]string{
	{"war", "peace"},
	{"love", "hate"},
	{"light", "dark"},
	{"good", "evil"},
	{"hot", "cold"},
	{"day", "night"},
}

// ContentIntegrity flags an edge as contradictory when its justification
// carries a negation or contrast marker, or when the endpoint beads' token
// sets contain a known antonym pair. Score is 1 - flagged/total over the
// player's edges; 1 when edgeless.
func ContentIntegrity(m *aggregates.Match, playerID string) float64 {
	edges := playerEdges(m, playerID)
	if len(edges) == 0 {
		return 1
	}
	flagged := 0
	for _, e := range edges {
		if edgeContradicts(m, e) {
			flagged++
		}
	}
	return 1 - float64(flagged)/float64(len(edges))
}

// ContradictoryEdges returns the ids of every edge on the board that trips
// the contradiction check, in insertion order.
func ContradictoryEdges(m *aggregates.Match) []string {
	var out []string
	for _, e := range m.Edges() {
		if edgeContradicts(m, e) {
			out = append(out, e.ID)
		}
	}
	return out
}

func edgeContradicts(m *aggregates.Match, e *entities.Edge) bool {
	if negationMarkers.MatchString(e.Justification) {
		return true
	}
	from, okF := m.Bead(e.From)
	to, okT := m.Bead(e.To)
	if !okF || !okT {
		return false
	}
	fromTokens := tokenSet(from.Text())
	toTokens := tokenSet(to.Text())
	for _, pair := range antonymPairs {
		if (fromTokens[pair[0]] && toTokens[pair[1]]) || (fromTokens[pair[1]] && toTokens[pair[0]]) {
			return true
		}
	}
	return false
}

var formattingMarkers = regexp.MustCompile("[*_`#>\\[\\]!]")

// ContentAesthetics blends sentence-length variance (varied cadence reads
// better, saturated through arctangent) with the share of beads carrying
// markdown formatting. Only text beads participate; without any the player
// gets a 0.2 baseline.
func ContentAesthetics(m *aggregates.Match, playerID string) float64 {
	var textBeads []*entities.Bead
	for _, b := range m.Beads() {
		if b.OwnerID() == playerID && b.Modality() == valueobjects.ModalityText {
			textBeads = append(textBeads, b)
		}
	}
	if len(textBeads) == 0 {
		return 0.2
	}

	var sentenceLengths []float64
	formatted := 0
	for _, b := range textBeads {
		body := b.Content().Body()
		for _, s := range splitSentences(body) {
			sentenceLengths = append(sentenceLengths, float64(len(strings.Fields(s))))
		}
		if formattingMarkers.MatchString(body) {
			formatted++
		}
	}

	varianceScore := 0.0
	if len(sentenceLengths) > 0 {
		mean := 0.0
		for _, l := range sentenceLengths {
			mean += l
		}
		mean /= float64(len(sentenceLengths))
		variance := 0.0
		for _, l := range sentenceLengths {
			variance += (l - mean) * (l - mean)
		}
		variance /= float64(len(sentenceLengths))
		varianceScore = math.Atan(variance) / (math.Pi / 2)
	}

	formattingScore := float64(formatted) / float64(len(textBeads))
	return 0.7*varianceScore + 0.3*formattingScore
}

// playerEdges returns the edges incident to any bead the player owns, in
// insertion order.
func playerEdges(m *aggregates.Match, playerID string) []*entities.Edge {
	var out []*entities.Edge
	for _, e := range m.Edges() {
		fromOwned := false
		if b, ok := m.Bead(e.From); ok && b.OwnerID() == playerID {
			fromOwned = true
		}
		toOwned := false
		if b, ok := m.Bead(e.To); ok && b.OwnerID() == playerID {
			toOwned = true
		}
		if fromOwned || toOwned {
			out = append(out, e)
		}
	}
	return out
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := parts[:0]
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func shingleHashes(text string) map[uint32]bool {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[uint32]bool)
	for i := 0; i+3 <= len(words); i++ {
		set[shingleHash(strings.Join(words[i:i+3], " "))] = true
	}
	return set
}

// shingleHash matches the classic 31-multiplier string hash over UTF-16 code
// units, truncated to 32 bits.
func shingleHash(s string) uint32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(u)
	}
	return uint32(h)
}
