package lattice

import "github.com/bcc3d/bcc/ident"

// Distance is the metric used by NeighborsWithinRadius. This implementation
// uses L-infinity (Chebyshev) distance in lattice units, the implementer's
// choice the spec leaves open; L-infinity was chosen because it composes
// naturally with the breadth-first 14-neighborhood expansion used here (a
// cell's L-infinity ball is exactly the set reachable within a bounded
// number of neighbor hops along any axis).
func Distance(ax, ay, az, bx, by, bz int64) int64 {
	d := absInt64(ax - bx)
	if v := absInt64(ay - by); v > d {
		d = v
	}
	if v := absInt64(az - bz); v > d {
		d = v
	}
	return d
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Id64NeighborsWithinRadius returns every identifier within L-infinity
// distance r (lattice units) of id, visiting cells breadth-first over the
// 14-neighborhood so each is reported at most once, excluding id itself.
func Id64NeighborsWithinRadius(id ident.Id64, r int64) ([]ident.Id64, error) {
	if r <= 0 {
		return nil, nil
	}

	x0, y0, z0 := id.Coords()
	visited := map[uint64]bool{id.ToRaw(): true}

	frontier := []ident.Id64{id}
	var result []ident.Id64

	for len(frontier) > 0 {
		var next []ident.Id64

		for _, cur := range frontier {
			neighbors, err := Id64Neighbors(cur)
			if err != nil {
				return nil, err
			}

			for _, n := range neighbors {
				if visited[n.ToRaw()] {
					continue
				}

				nx, ny, nz := n.Coords()
				if Distance(x0, y0, z0, nx, ny, nz) > r {
					continue
				}

				visited[n.ToRaw()] = true
				result = append(result, n)
				next = append(next, n)
			}
		}

		frontier = next
	}

	return result, nil
}
