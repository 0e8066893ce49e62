package graph

import (
	"sort"

	"github.com/vastuforge/floorplan/pkg/roomdata"
)

// RoomInput is the minimal shape BuildAdjacency needs from a room request:
// its ID and resolved RoomType.
type RoomInput struct {
	ID   string
	Type roomdata.RoomType
}

// BuildAdjacency constructs the functional adjacency graph for a room
// list: predefined per-type edges from roomdata.PreferredAdjacencies,
// pruned to the rooms actually present, with critical edges weighted
// 2.0 and ordinary edges 1.0 (spec.md §4.6). Edges are deduplicated: if
// both directions of a pair declare a preference (e.g. kitchen->dining
// and dining->kitchen), the edge is added once, at the higher of the
// two weights.
func BuildAdjacency(seed uint64, rooms []RoomInput) (*Graph, error) {
	g := NewGraph(seed)

	byType := make(map[roomdata.RoomType][]string)
	for _, r := range rooms {
		if err := g.AddRoom(&Vertex{ID: r.ID, Type: r.Type}); err != nil {
			return nil, err
		}
		byType[r.Type] = append(byType[r.Type], r.ID)
	}

	type pairKey struct{ a, b string }
	added := make(map[pairKey]float64)

	for _, r := range rooms {
		for _, adj := range roomdata.PreferredAdjacencies(r.Type) {
			weight := 1.0
			if adj.Critical {
				weight = 2.0
			}
			for _, otherID := range byType[adj.Neighbor] {
				if otherID == r.ID {
					continue
				}
				key := pairKey{r.ID, otherID}
				if key.a > key.b {
					key.a, key.b = key.b, key.a
				}
				if existing, ok := added[key]; !ok || weight > existing {
					added[key] = weight
				}
			}
		}
	}

	keys := make([]pairKey, 0, len(added))
	for key := range added {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})
	for _, key := range keys {
		if err := g.AddEdge(key.a, key.b, added[key]); err != nil {
			return nil, err
		}
	}

	return g, nil
}
