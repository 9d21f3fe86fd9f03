// Package spawn picks the least contested spawn point for a new entity.
package spawn

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

// EnemyQuery returns the positions of every live entity hostile to the one
// being spawned. Center is the candidate being scored.
type EnemyQuery func(center arena.Vec3) []arena.Vec3

// Score is the contest measurement of one candidate
type Score struct {
	Point             arena.SpawnPoint
	EnemyCount        int
	DistanceToClosest float64
}

// Evaluate scores a single candidate. EnemyCount only includes hostiles within
// radius; DistanceToClosest considers every hostile and is radius when there are none.
func Evaluate(point arena.SpawnPoint, enemies EnemyQuery, radius float64) Score {
	score := Score{Point: point, DistanceToClosest: radius}
	if enemies == nil {
		return score
	}

	found := false
	for _, pos := range enemies(point.Position) {
		d := point.Position.Distance(pos)
		if d <= radius {
			score.EnemyCount++
		}
		if !found || d < score.DistanceToClosest {
			score.DistanceToClosest = d
			found = true
		}
	}
	return score
}

// better reports whether a beats b: fewer enemies, then farther from the closest one
func better(a, b Score) bool {
	if a.EnemyCount != b.EnemyCount {
		return a.EnemyCount < b.EnemyCount
	}
	return a.DistanceToClosest > b.DistanceToClosest
}

// SelectSpawnPoint returns the candidate with the fewest hostiles within radius,
// breaking ties by the largest distance to the closest hostile. Earlier
// candidates win exact ties. ok is false only when there are no candidates.
func SelectSpawnPoint(candidates []arena.SpawnPoint, enemies EnemyQuery, radius float64) (best arena.SpawnPoint, ok bool) {
	if len(candidates) == 0 {
		return arena.SpawnPoint{}, false
	}

	bestScore := Evaluate(candidates[0], enemies, radius)
	for _, c := range candidates[1:] {
		score := Evaluate(c, enemies, radius)
		if better(score, bestScore) {
			bestScore = score
		}
	}
	return bestScore.Point, true
}

// Candidates narrows points to those matching key. An empty key keeps every
// point. When nothing matches, the first configured point is the only candidate.
func Candidates(points []arena.SpawnPoint, key string) []arena.SpawnPoint {
	if key == "" || len(points) == 0 {
		return points
	}

	var out []arena.SpawnPoint
	for _, p := range points {
		if p.Key == key {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return points[:1]
	}
	return out
}
