package ants

// TwoOpt applies first-improvement 2-opt moves to path in place until a full
// scan finds no move gaining more than threshold. It returns the number of
// moves applied. The path length never increases.
func TwoOpt(path *Path, distances *DistanceMatrix, threshold float64) (moves int) {
	n := path.Size()
	for improved := true; improved; {
		improved = false
	scan:
		for i := 0; i < n-2; i++ {
			for j := i + 2; j < n; j++ {
				if twoOptGain(path, distances, i, j) > threshold {
					path.Reverse(i+1, j)
					moves++
					improved = true
					break scan
				}
			}
		}
	}
	return moves
}

// twoOptGain is the length saved by replacing edges (a,b) and (c,d) with
// (a,c) and (b,d).
func twoOptGain(path *Path, distances *DistanceMatrix, i, j int) float64 {
	n := path.Size()
	a, b := path.At(i), path.At((i+1)%n)
	c, d := path.At(j), path.At((j+1)%n)
	return distances.At(a, b) + distances.At(c, d) - distances.At(a, c) - distances.At(b, d)
}
