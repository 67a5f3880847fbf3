package phase

import (
	"slices"

	"github.com/samber/lo"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/conflict"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/mis"
)

// Group is the compatibility group of one lane.
type Group struct {
	Lane    int   `json:"lane"`
	Members []int `json:"members"`

	// Fallback is set when no compatible lane was found and Members is [Lane].
	Fallback bool `json:"fallback,omitempty"`
}

// Finder computes compatibility groups with a pluggable independent-set
// strategy. A Finder holds no state between calls beyond its strategy.
type Finder struct {
	strategy mis.Strategy
}

// NewFinder creates a finder. A nil strategy selects the default exact
// strategy with a greedy fallback.
func NewFinder(s mis.Strategy) *Finder {
	if s == nil {
		s = mis.NewExact(0)
	}
	return &Finder{strategy: s}
}

// Strategy returns the strategy in use.
func (f *Finder) Strategy() mis.Strategy { return f.strategy }

// Find returns one group per lane of adj, ordered by lane.
func (f *Finder) Find(adj *conflict.Adjacency) ([]Group, error) {
	g := BuildGraph(adj)
	ids := nodeIDs(g)

	groups := make([]Group, 0, len(ids))
	for _, id := range ids {
		excluded := neighbors(g, id)
		excluded[id] = true
		candidates := lo.Reject(ids, func(c int64, _ int) bool { return excluded[c] })

		sub := Induce(g, candidates)
		set, err := f.strategy.IndependentSet(sub)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSolver, err, "%s strategy on lane %d", f.strategy.Name(), id)
		}
		if !mis.IsIndependent(sub, set) {
			return nil, errors.New(errors.ErrCodeSolver,
				"%s strategy returned %v for lane %d, which is not an independent subset of %v",
				f.strategy.Name(), set, id, candidates)
		}

		if len(set) == 0 {
			groups = append(groups, Group{Lane: int(id), Members: []int{int(id)}, Fallback: true})
			continue
		}
		members := lo.Map(set, func(v int64, _ int) int { return int(v) })
		slices.Sort(members)
		groups = append(groups, Group{Lane: int(id), Members: members})
	}
	return groups, nil
}
