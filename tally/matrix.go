// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sort"

	"github.com/danielhkuo/rangepoll/models"
)

// Matrix is the dense voter-by-choice vote grid built from a poll's sparse
// per-choice arrays. Rows are the distinct voters who voted at least once,
// sorted lexicographically; columns are the choices in declaration order.
// Both orders are fixed so that two builds of the same poll are identical.
//
// A cell is 0 when the voter cast no vote for that choice, which is
// indistinguishable from an explicit zero score.
type Matrix struct {
	Voters  []string
	Choices []string
	Cells   [][]int // Cells[row][col], row aligned with Voters, col with Choices
}

// BuildMatrix gathers every voter that appears in any choice and fills the
// grid in O(voters * choices).
func BuildMatrix(p *models.Poll) *Matrix {
	seen := make(map[string]bool)
	for _, c := range p.Choices {
		for _, v := range c.Voters {
			seen[v] = true
		}
	}

	voters := make([]string, 0, len(seen))
	for v := range seen {
		voters = append(voters, v)
	}
	sort.Strings(voters)

	rowOf := make(map[string]int, len(voters))
	for i, v := range voters {
		rowOf[v] = i
	}

	m := &Matrix{
		Voters:  voters,
		Choices: make([]string, len(p.Choices)),
		Cells:   make([][]int, len(voters)),
	}
	for i := range m.Cells {
		m.Cells[i] = make([]int, len(p.Choices))
	}
	for col, c := range p.Choices {
		m.Choices[col] = c.Name
		for i, v := range c.Voters {
			m.Cells[rowOf[v]][col] = c.Votes[i]
		}
	}
	return m
}

// Complete reports whether every allowed participant of the poll has a
// recorded score for every choice. Participants who never voted count
// against completeness, not just the voters already in the grid.
func Complete(p *models.Poll) bool {
	for _, c := range p.Choices {
		for _, v := range p.AllowedParticipants {
			if c.VoterIndex(v) < 0 {
				return false
			}
		}
	}
	return true
}

// duplicateRank returns the first voter (in row order) whose row contains
// the same score twice, for algorithms that require strict per-voter ranking.
func (m *Matrix) duplicateRank() (string, bool) {
	for r, row := range m.Cells {
		used := make(map[int]bool, len(row))
		for _, s := range row {
			if used[s] {
				return m.Voters[r], true
			}
			used[s] = true
		}
	}
	return "", false
}
