package layout

import (
	"math"
	"sort"
)

// indentClusterGap is the distance from a cluster's running mean beyond
// which a new indent cluster starts.
const indentClusterGap = 25.0

// IndentThresholds clusters the x-origins of a page's line fragments into
// discrete indentation levels. Positions are deduplicated and sorted, then
// grouped greedily: a new cluster starts whenever the next position is more
// than indentClusterGap from the running average of the current cluster.
// The result is the ascending list of cluster means; an empty input yields
// an empty list.
func IndentThresholds(xPositions []float64) []float64 {
	if len(xPositions) == 0 {
		return nil
	}

	seen := make(map[float64]bool, len(xPositions))
	unique := make([]float64, 0, len(xPositions))
	for _, x := range xPositions {
		if !seen[x] {
			seen[x] = true
			unique = append(unique, x)
		}
	}
	sort.Float64s(unique)

	if len(unique) == 1 {
		return unique
	}

	var thresholds []float64
	cluster := []float64{unique[0]}

	for _, pos := range unique[1:] {
		avg := mean(cluster)
		if pos-avg > indentClusterGap {
			thresholds = append(thresholds, avg)
			cluster = cluster[:0]
		}
		cluster = append(cluster, pos)
	}
	thresholds = append(thresholds, mean(cluster))

	return thresholds
}

// IndentLevel returns the indentation level for an x-origin: the index of
// the nearest threshold by absolute distance, not the first threshold
// exceeded. With no thresholds every position is level 0.
func IndentLevel(x float64, thresholds []float64) int {
	level := 0
	minDist := math.Inf(1)
	for i, threshold := range thresholds {
		if dist := math.Abs(x - threshold); dist < minDist {
			minDist = dist
			level = i
		}
	}
	return level
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
