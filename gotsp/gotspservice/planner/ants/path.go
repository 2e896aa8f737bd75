package ants

type Path struct {
	path []int
}

func NewPath(capacity int) Path {
	return Path{make([]int, 0, capacity)}
}

// IdentityPath visits cities in index order.
func IdentityPath(n int) Path {
	p := NewPath(n)
	for i := 0; i < n; i++ {
		p.Append(i)
	}
	return p
}

func (p *Path) Append(value int) {
	p.path = append(p.path, value)
}

func (p *Path) At(i int) int {
	if i >= len(p.path) {
		panic("array index out of bounds")
	}
	return p.path[i]
}

func (p *Path) Size() int {
	return len(p.path)
}

func (p *Path) Indexes() []int {
	return append([]int(nil), p.path...)
}

// Reverse reverses the segment [i, j] in place.
func (p *Path) Reverse(i, j int) {
	for ; i < j; i, j = i+1, j-1 {
		p.path[i], p.path[j] = p.path[j], p.path[i]
	}
}

// Length sums the cyclic edges from scratch.
func (p *Path) Length(distances *DistanceMatrix) float64 {
	n := p.Size()
	if n < 2 {
		return 0
	}
	tot := 0.0
	for i := 0; i < n-1; i++ {
		tot += distances.At(p.path[i], p.path[i+1])
	}
	tot += distances.At(p.path[n-1], p.path[0])
	return tot
}
