package blend

import (
	"sort"

	"github.com/siherrmann/blender/model"
)

// PathFinder searches for the game ordering with the highest summed
// compatibility, a maximum weight Hamiltonian path over the graph.
// Small selections are solved exactly, larger ones with a greedy
// construction plus bounded 2-opt improvement.
type PathFinder struct {
	exhaustiveSearchLimit int
	twoOptMaxPasses       int
}

// NewPathFinder creates a new path finder from the given config
func NewPathFinder(config *model.BlendConfig) *PathFinder {
	return &PathFinder{
		exhaustiveSearchLimit: config.ExhaustiveSearchLimit,
		twoOptMaxPasses:       config.TwoOptMaxPasses,
	}
}

// FindPath returns the best ordering of all games in the graph. Ties
// in total weight prefer the path whose first game id sorts first, so
// the result is reproducible for identical inputs.
func (p *PathFinder) FindPath(graph *CompatibilityGraph) (*model.BlendPath, error) {
	gameIDs := graph.GameIDs()
	if len(gameIDs) < 2 {
		return nil, ErrInsufficientSelection
	}

	sorted := make([]string, len(gameIDs))
	copy(sorted, gameIDs)
	sort.Strings(sorted)

	var order []string
	if len(sorted) <= p.exhaustiveSearchLimit {
		order = p.exhaustiveSearch(graph, sorted)
	} else {
		order = p.greedySearch(graph, sorted)
		order = p.twoOptImprove(graph, order)
	}

	return p.PathFromOrder(graph, order), nil
}

// PathFromOrder assembles a blend path for a fixed ordering, summing
// consecutive edge weights and collecting their synergies and
// conflicts with exact duplicates removed.
func (p *PathFinder) PathFromOrder(graph *CompatibilityGraph, order []string) *model.BlendPath {
	path := &model.BlendPath{
		GameIDs:   order,
		Synergies: []model.Synergy{},
		Conflicts: []model.Conflict{},
	}

	seenSynergies := make(map[model.Synergy]bool)
	seenConflicts := make(map[model.Conflict]bool)

	for i := 0; i < len(order)-1; i++ {
		edge, ok := graph.Edge(order[i], order[i+1])
		if !ok {
			continue
		}
		path.TotalCompatibility += edge.Weight

		for _, synergy := range edge.Synergies {
			if !seenSynergies[synergy] {
				seenSynergies[synergy] = true
				path.Synergies = append(path.Synergies, synergy)
			}
		}
		for _, conflict := range edge.Conflicts {
			if !seenConflicts[conflict] {
				seenConflicts[conflict] = true
				path.Conflicts = append(path.Conflicts, conflict)
			}
		}
	}

	return path
}

// exhaustiveSearch tries every permutation in lexicographic order and
// keeps the first one reaching the maximum total weight
func (p *PathFinder) exhaustiveSearch(graph *CompatibilityGraph, sorted []string) []string {
	var best []string
	bestWeight := 0.0

	permuteLexicographic(sorted, func(order []string) {
		weight := p.orderWeight(graph, order)
		if best == nil || weight > bestWeight || (weight == bestWeight && order[0] < best[0]) {
			bestWeight = weight
			best = append(best[:0], order...)
		}
	})

	return best
}

// greedySearch builds a nearest-neighbor path from every possible
// start and keeps the heaviest, ties preferring the smaller first id
func (p *PathFinder) greedySearch(graph *CompatibilityGraph, sorted []string) []string {
	var best []string
	bestWeight := 0.0

	for _, start := range sorted {
		order := make([]string, 0, len(sorted))
		visited := make(map[string]bool, len(sorted))
		order = append(order, start)
		visited[start] = true

		current := start
		for len(order) < len(sorted) {
			// Neighbors are ranked by weight, first unvisited wins
			for _, neighbor := range graph.Neighbors(current) {
				if !visited[neighbor] {
					order = append(order, neighbor)
					visited[neighbor] = true
					current = neighbor
					break
				}
			}
		}

		weight := p.orderWeight(graph, order)
		if best == nil || weight > bestWeight || (weight == bestWeight && order[0] < best[0]) {
			bestWeight = weight
			best = order
		}
	}

	return best
}

// twoOptImprove reverses path segments while doing so strictly
// increases the total weight, bounded by the configured pass limit
func (p *PathFinder) twoOptImprove(graph *CompatibilityGraph, order []string) []string {
	improved := true
	for pass := 0; pass < p.twoOptMaxPasses && improved; pass++ {
		improved = false
		for i := 0; i < len(order)-1; i++ {
			for j := i + 1; j < len(order); j++ {
				// Reversing the whole path keeps the same weight
				if i == 0 && j == len(order)-1 {
					continue
				}
				if p.reversalGain(graph, order, i, j) > 0 {
					reverseSegment(order[i : j+1])
					improved = true
				}
			}
		}
	}
	return order
}

// reversalGain is the total weight change of reversing order[i..j].
// Only the two boundary edges change.
func (p *PathFinder) reversalGain(graph *CompatibilityGraph, order []string, i int, j int) float64 {
	gain := 0.0
	if i > 0 {
		gain += graph.Weight(order[i-1], order[j]) - graph.Weight(order[i-1], order[i])
	}
	if j < len(order)-1 {
		gain += graph.Weight(order[i], order[j+1]) - graph.Weight(order[j], order[j+1])
	}
	return gain
}

// orderWeight sums the consecutive edge weights of an ordering
func (p *PathFinder) orderWeight(graph *CompatibilityGraph, order []string) float64 {
	weight := 0.0
	for i := 0; i < len(order)-1; i++ {
		weight += graph.Weight(order[i], order[i+1])
	}
	return weight
}

// permuteLexicographic visits every permutation of the sorted ids in
// lexicographic order
func permuteLexicographic(sorted []string, visit func(order []string)) {
	order := make([]string, 0, len(sorted))
	used := make([]bool, len(sorted))

	var recurse func()
	recurse = func() {
		if len(order) == len(sorted) {
			visit(order)
			return
		}
		for i, gameID := range sorted {
			if used[i] {
				continue
			}
			used[i] = true
			order = append(order, gameID)
			recurse()
			order = order[:len(order)-1]
			used[i] = false
		}
	}
	recurse()
}

// reverseSegment reverses a slice segment in place
func reverseSegment(segment []string) {
	for i, j := 0, len(segment)-1; i < j; i, j = i+1, j-1 {
		segment[i], segment[j] = segment[j], segment[i]
	}
}
