package judgment

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"beadloom/domain/core/aggregates"
	"beadloom/pkg/random"
)

const magisterName = "Magister Ludi"

type axisMeta struct {
	label    string
	emphasis string
	prompt   string
}

var axisMetaByName = map[string]axisMeta{
	AxisResonance: {
		label:    "Resonance",
		emphasis: "Harmonic echoes ripple cleanly across the weave.",
		prompt:   "Where might a supporting echo deepen this tone?",
	},
	AxisNovelty: {
		label:    "Novelty",
		emphasis: "Fresh patterns enliven the canon without breaking it.",
		prompt:   "What surprising bead could extend this new motif?",
	},
	AxisIntegrity: {
		label:    "Integrity",
		emphasis: "Contradictions stay quiet; arguments hold steady.",
		prompt:   "Which principle deserves further shoring against fracture?",
	},
	AxisAesthetics: {
		label:    "Aesthetics",
		emphasis: "The arrangement lands with poised beauty.",
		prompt:   "What embellishment could brighten this composition?",
	},
	AxisResilience: {
		label:    "Resilience",
		emphasis: "Structure and redundancy protect the flow of insight.",
		prompt:   "Where could you lattice another safeguard?",
	},
}

// Judge seals a verdict over the current board. Scoring is fully
// deterministic: the resilience probe runs on a fixed-seed stream, so judging
// the same board twice yields identical scrolls.
func Judge(m *aggregates.Match) *JudgmentScroll {
	cfg := m.Config()
	resilience := EvaluateResilience(m, cfg.ResilienceTrials, random.NewMulberry32(cfg.JudgeSeed))

	scores := make(map[string]JudgedScores, len(m.Players()))
	for _, p := range m.Players() {
		slice := SliceFor(m, p.ID())
		s := JudgedScores{
			Resonance:  ResonanceScore(slice),
			Novelty:    NoveltyScore(slice),
			Integrity:  IntegrityScore(slice),
			Aesthetics: AestheticsScore(slice),
			Resilience: resilience.Scores[p.ID()],
		}
		s.Contributions = AxisContributions{
			Resonance:  WeightResonance * s.Resonance,
			Novelty:    WeightNovelty * s.Novelty,
			Integrity:  WeightIntegrity * s.Integrity,
			Aesthetics: WeightAesthetics * s.Aesthetics,
			Resilience: WeightResilience * s.Resilience,
		}
		s.Total = s.Contributions.Resonance + s.Contributions.Novelty +
			s.Contributions.Integrity + s.Contributions.Aesthetics +
			s.Contributions.Resilience
		scores[p.ID()] = s
	}

	graph := GraphFromMatch(m)
	limits := SearchLimits{MaxDepth: cfg.SearchMaxDepth, MaxVisits: cfg.SearchMaxVisits}
	rawPaths := FindStrongestPaths(graph, cfg.StrongPathCount, limits)
	strongPaths := make([]StrongPath, 0, len(rawPaths))
	for _, p := range rawPaths {
		strongPaths = append(strongPaths, StrongPath{
			Nodes: p.Nodes,
			Why:   fmt.Sprintf("weight %.2f", p.Weight),
		})
	}

	var weakSpots []string
	for _, b := range m.Beads() {
		if graph.Degree(b.ID()) == 0 {
			weakSpots = append(weakSpots, b.ID())
		}
	}

	winner := ""
	bestTotal := math.Inf(-1)
	for _, p := range m.Players() {
		if s, ok := scores[p.ID()]; ok && s.Total > bestTotal {
			bestTotal = s.Total
			winner = p.ID()
		}
	}

	axisTurns := buildAxisTurns(m, scores)
	pathTurns := buildPathTurns(m, rawPaths)
	closing := buildClosing(m, winner, weakSpots)

	turns := make([]DialogueTurn, 0, len(axisTurns)+len(pathTurns)+1)
	turns = append(turns, axisTurns...)
	turns = append(turns, pathTurns...)
	turns = append(turns, closing)

	summary := Summary{
		LeadingPlayer:   winner,
		StrongPathCount: len(strongPaths),
		WeakSpotCount:   len(weakSpots),
	}
	for _, turn := range axisTurns {
		lead := turn.Ranking[0]
		margin := lead.Value
		if len(turn.Ranking) > 1 {
			margin = lead.Value - turn.Ranking[1].Value
		}
		summary.AxisLeads = append(summary.AxisLeads, AxisLead{
			Axis:   turn.Axis,
			Leader: lead.PlayerID,
			Value:  round4(lead.Value),
			Margin: round4(margin),
		})
	}

	return &JudgmentScroll{
		Winner:       winner,
		Scores:       scores,
		StrongPaths:  strongPaths,
		WeakSpots:    weakSpots,
		FragileEdges: resilience.WeakSpots,
		Summary:      summary,
		Dialogue:     Dialogue{Magister: magisterName, Turns: turns},
	}
}

func buildAxisTurns(m *aggregates.Match, scores map[string]JudgedScores) []DialogueTurn {
	var turns []DialogueTurn
	for _, axis := range JudgmentAxes {
		var ranking []AxisRankingEntry
		for _, p := range m.Players() {
			s, ok := scores[p.ID()]
			if !ok {
				continue
			}
			ranking = append(ranking, AxisRankingEntry{
				PlayerID:     p.ID(),
				Value:        s.Axis(axis),
				Contribution: s.Contribution(axis),
			})
		}
		sort.SliceStable(ranking, func(i, j int) bool {
			return ranking[i].Value > ranking[j].Value
		})
		if len(ranking) == 0 {
			continue
		}
		lead := ranking[0]
		meta := axisMetaByName[axis]
		parts := []string{
			fmt.Sprintf("%s favors %s (%s)", meta.label, playerName(m, lead.PlayerID), formatScore(lead.Value)),
		}
		if len(ranking) > 1 {
			runner := ranking[1]
			parts = append(parts, fmt.Sprintf("holding a margin of %s over %s",
				formatScore(lead.Value-runner.Value), playerName(m, runner.PlayerID)))
		}
		parts = append(parts, meta.emphasis)
		turns = append(turns, DialogueTurn{
			Kind:    "axis-insight",
			Axis:    axis,
			Title:   meta.label + " Insight",
			Insight: strings.Join(parts, " — "),
			Ranking: ranking,
			Prompt:  meta.prompt,
		})
	}
	return turns
}

func buildPathTurns(m *aggregates.Match, paths []PathWeight) []DialogueTurn {
	var turns []DialogueTurn
	for i, p := range paths {
		readable := make([]string, 0, len(p.Nodes))
		for _, id := range p.Nodes {
			readable = append(readable, beadLabel(m, id))
		}
		index := i
		weight := round2(p.Weight)
		turns = append(turns, DialogueTurn{
			Kind:      "path-story",
			Title:     fmt.Sprintf("Path %d", i+1),
			Nodes:     p.Nodes,
			PathIndex: &index,
			Weight:    &weight,
			Story: fmt.Sprintf("Thread %s carries weight %.2f, inviting attention to its closing bead.",
				strings.Join(readable, " → "), p.Weight),
			Prompt: fmt.Sprintf("How might you reinforce %s?", readable[len(readable)-1]),
		})
	}
	return turns
}

func buildClosing(m *aggregates.Match, winner string, weakSpots []string) DialogueTurn {
	reflection := fmt.Sprintf("%s withholds a laurel; the weave remains open-ended.", magisterName)
	if winner != "" {
		reflection = fmt.Sprintf("%s recognizes %s as steward of the weave for now.",
			magisterName, playerName(m, winner))
	}
	prompt := "Where will the next resonance take root?"
	if len(weakSpots) > 0 {
		quiet := weakSpots
		suffix := ""
		if len(quiet) > 3 {
			quiet = quiet[:3]
			suffix = ", …"
		}
		labels := make([]string, 0, len(quiet))
		for _, id := range quiet {
			labels = append(labels, beadLabel(m, id))
		}
		prompt = fmt.Sprintf("Which connections could awaken %s%s?", strings.Join(labels, ", "), suffix)
	}
	return DialogueTurn{
		Kind:       "closing",
		Title:      "Closing Contemplation",
		Reflection: reflection,
		Prompt:     prompt,
	}
}

func playerName(m *aggregates.Match, playerID string) string {
	if p, ok := m.Player(playerID); ok && p.Handle() != "" {
		return p.Handle()
	}
	return playerID
}

func beadLabel(m *aggregates.Match, beadID string) string {
	b, ok := m.Bead(beadID)
	if !ok {
		return beadID
	}
	if title := strings.TrimSpace(b.Content().Title()); title != "" {
		return fmt.Sprintf("%s (%s)", title, beadID)
	}
	return beadID
}

func formatScore(v float64) string { return fmt.Sprintf("%.1f", v*100) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
