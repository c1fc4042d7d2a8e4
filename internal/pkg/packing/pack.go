// Package packing lays out circles sized by a quantity without overlap inside
// a unit enclosing circle.
//
// Siblings are placed with the front-chain algorithm of Wang et al. ("Visualization
// of large hierarchical data by circle packing", 2006) and enclosed with Welzl's
// minimal enclosing circle.
package packing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNonPositive is returned when a value is zero, negative or NaN.
var ErrNonPositive = errors.New("packing: values must be positive")

// Circle is a placed circle. Index refers to the position of the value in the
// slice passed to Pack.
type Circle struct {
	X, Y, R float64
	Index   int
}

// Pack places one circle per value, with area proportional to the value, and
// normalizes the layout so that the enclosing circle is the unit circle at the
// origin. Circles are returned in the order of the input values.
func Pack(values []float64) ([]Circle, error) {
	if len(values) == 0 {
		return nil, nil
	}
	circles := make([]*Circle, len(values))
	for i, v := range values {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: values[%d]=%v", ErrNonPositive, i, v)
		}
		circles[i] = &Circle{R: math.Sqrt(v), Index: i}
	}

	// Largest first keeps the front chain compact.
	ordered := make([]*Circle, len(circles))
	copy(ordered, circles)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].R > ordered[j].R })

	enclosing := packSiblings(ordered)

	out := make([]Circle, len(circles))
	for i, c := range circles {
		out[i] = Circle{
			X:     (c.X - enclosing.X) / enclosing.R,
			Y:     (c.Y - enclosing.Y) / enclosing.R,
			R:     c.R / enclosing.R,
			Index: c.Index,
		}
	}
	return out, nil
}

type chainNode struct {
	c          *Circle
	next, prev *chainNode
}

// packSiblings positions circles tangent to each other and returns the
// enclosing circle of the result.
func packSiblings(circles []*Circle) Circle {
	n := len(circles)
	a := circles[0]
	a.X, a.Y = 0, 0
	if n == 1 {
		return Circle{X: 0, Y: 0, R: a.R}
	}

	b := circles[1]
	a.X, b.X, b.Y = -b.R, a.R, 0
	if n == 2 {
		return enclose(circles)
	}

	place(b, a, circles[2])

	na := &chainNode{c: a}
	nb := &chainNode{c: b}
	nc := &chainNode{c: circles[2]}
	na.next, nc.prev = nb, nb
	nb.next, na.prev = nc, nc
	nc.next, nb.prev = na, na

pack:
	for i := 3; i < n; i++ {
		c := circles[i]
		place(na.c, nb.c, c)
		node := &chainNode{c: c}

		// Find the closest intersecting circle on the front chain, measured
		// by distance along the chain in either direction.
		j, k := nb.next, na.prev
		sj, sk := nb.c.R, na.c.R
		for {
			if sj <= sk {
				if intersects(j.c, c) {
					nb = j
					na.next, nb.prev = nb, na
					i--
					continue pack
				}
				sj += j.c.R
				j = j.next
			} else {
				if intersects(k.c, c) {
					na = k
					na.next, nb.prev = nb, na
					i--
					continue pack
				}
				sk += k.c.R
				k = k.prev
			}
			if j == k.next {
				break
			}
		}

		node.prev, node.next = na, nb
		na.next, nb.prev = node, node
		nb = node

		// Move the insertion pair to the one closest to the centroid.
		best := score(na)
		for cur := node.next; cur != nb; cur = cur.next {
			if s := score(cur); s < best {
				na, best = cur, s
			}
		}
		nb = na.next
	}

	chain := []*Circle{nb.c}
	for cur := nb.next; cur != nb; cur = cur.next {
		chain = append(chain, cur.c)
	}
	return enclose(chain)
}

// place positions c tangent to both a and b.
func place(b, a, c *Circle) {
	dx, dy := b.X-a.X, b.Y-a.Y
	d2 := dx*dx + dy*dy
	if d2 == 0 {
		c.X, c.Y = a.X+c.R, a.Y
		return
	}
	a2 := (a.R + c.R) * (a.R + c.R)
	b2 := (b.R + c.R) * (b.R + c.R)
	if a2 > b2 {
		x := (d2 + b2 - a2) / (2 * d2)
		y := math.Sqrt(math.Max(0, b2/d2-x*x))
		c.X = b.X - x*dx - y*dy
		c.Y = b.Y - x*dy + y*dx
		return
	}
	x := (d2 + a2 - b2) / (2 * d2)
	y := math.Sqrt(math.Max(0, a2/d2-x*x))
	c.X = a.X + x*dx - y*dy
	c.Y = a.Y + x*dy + y*dx
}

func intersects(a, b *Circle) bool {
	dr := a.R + b.R - 1e-6
	dx, dy := b.X-a.X, b.Y-a.Y
	return dr > 0 && dr*dr > dx*dx+dy*dy
}

// score is the squared distance from the origin to the weighted midpoint of
// node and its successor.
func score(node *chainNode) float64 {
	a, b := node.c, node.next.c
	ab := a.R + b.R
	dx := (a.X*b.R + b.X*a.R) / ab
	dy := (a.Y*b.R + b.Y*a.R) / ab
	return dx*dx + dy*dy
}
