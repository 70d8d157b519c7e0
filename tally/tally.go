// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/rangepoll/models"
)

// defaultScoreMax is the display reference when an algorithm has no natural
// maximum (max and bordat score on the usual 1..5 point range).
const defaultScoreMax = 5

// Compute tallies the poll under its voting algorithm. It is a pure
// function: the poll is not modified and no state is shared.
//
// When the poll demands a complete vote (show-only-complete-result) and any
// allowed participant is missing anywhere, the pending result is returned
// instead of a ranking; that is a success value, not an error.
func Compute(p *models.Poll) (models.TallyResult, error) {
	res := models.TallyResult{
		Poll:      p.Name,
		Algorithm: p.Algorithm,
		ScoreMax:  defaultScoreMax,
	}

	if !p.Algorithm.Valid() {
		return res, fmt.Errorf("%w: unknown voting algorithm %q", models.ErrInvalidInput, p.Algorithm)
	}

	if p.Options.ShowOnlyCompleteResult && !Complete(p) {
		res.Pending = true
		return res, nil
	}

	m := BuildMatrix(p)

	// Every algorithm except max and binary ranks choices per voter, so a
	// voter giving the same score twice makes the ballot ambiguous.
	switch p.Algorithm {
	case models.AlgorithmMax, models.AlgorithmBinary:
	default:
		if voter, dup := m.duplicateRank(); dup {
			return res, &models.DuplicateRankError{Voter: voter, Algorithm: p.Algorithm}
		}
	}

	var scores []float64
	switch p.Algorithm {
	case models.AlgorithmMax:
		scores = scoreMax(m)
	case models.AlgorithmBinary:
		scores = scoreBinary(m)
		res.ScoreMax = maxOf(scores)
	case models.AlgorithmBordat:
		scores = scoreBordat(m)
	case models.AlgorithmCondorcet:
		scores = scoreCondorcet(m)
		res.ScoreMax = float64(len(m.Choices))
	case models.AlgorithmFirstChoice:
		scores = scoreFirstChoice(m)
		res.ScoreMax = float64(len(m.Choices))
	case models.AlgorithmFrenchSystem, models.AlgorithmSuccessiveElimination:
		return res, &models.UnimplementedError{Algorithm: p.Algorithm}
	}

	res.Ranking = rank(m.Choices, scores)
	return res, nil
}

// scoreMax divides each column sum by the number of distinct voters who
// voted at all, not by the count who voted for that choice. A choice with
// incomplete turnout is penalized relative to the whole electorate; missing
// ballots count as zero.
func scoreMax(m *Matrix) []float64 {
	scores := make([]float64, len(m.Choices))
	if len(m.Voters) == 0 {
		return scores
	}
	for col := range m.Choices {
		sum := 0
		for _, row := range m.Cells {
			sum += row[col]
		}
		scores[col] = float64(sum) / float64(len(m.Voters))
	}
	return scores
}

// scoreBinary reports raw column sums, for simple yes/no polls.
func scoreBinary(m *Matrix) []float64 {
	scores := make([]float64, len(m.Choices))
	for col := range m.Choices {
		sum := 0
		for _, row := range m.Cells {
			sum += row[col]
		}
		scores[col] = float64(sum)
	}
	return scores
}

// scoreBordat replaces each voter's raw scores with ranks 1..N (worst choice
// gets 1) and then applies the max rule to the normalized grid.
func scoreBordat(m *Matrix) []float64 {
	norm := &Matrix{
		Voters:  m.Voters,
		Choices: m.Choices,
		Cells:   make([][]int, len(m.Cells)),
	}
	for r, row := range m.Cells {
		order := make([]int, len(row))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return row[order[a]] < row[order[b]] })

		ranked := make([]int, len(row))
		for pos, col := range order {
			ranked[col] = pos + 1
		}
		norm.Cells[r] = ranked
	}
	return scoreMax(norm)
}

// scoreCondorcet counts, for each choice, the pairwise duels it wins. A duel
// against another column is won when the choice beats the opponent in
// strictly more than half of the voter rows. The duel against the choice's
// own column can never be won.
func scoreCondorcet(m *Matrix) []float64 {
	threshold := len(m.Voters) / 2
	scores := make([]float64, len(m.Choices))
	for col := range m.Choices {
		duels := 0
		for other := range m.Choices {
			wins := 0
			for _, row := range m.Cells {
				if row[col] > row[other] {
					wins++
				}
			}
			if wins > threshold {
				duels++
			}
		}
		scores[col] = float64(duels)
	}
	return scores
}

// scoreFirstChoice keeps only each voter's preferred choice: the column
// holding the row maximum (first such column on a tie) gains one point.
func scoreFirstChoice(m *Matrix) []float64 {
	scores := make([]float64, len(m.Choices))
	for _, row := range m.Cells {
		if len(row) == 0 {
			continue
		}
		best := 0
		for col, s := range row {
			if s > row[best] {
				best = col
			}
		}
		scores[best]++
	}
	return scores
}

// rank pairs choices with their scores and sorts by descending score. The
// sort is stable so ties keep the original choice-declaration order, which
// is user-visible and must not change between runs.
func rank(choices []string, scores []float64) []models.ChoiceScore {
	out := make([]models.ChoiceScore, len(choices))
	for i, name := range choices {
		out[i] = models.ChoiceScore{Choice: name, Score: scores[i]}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}

func maxOf(scores []float64) float64 {
	max := 0.0
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	return max
}
