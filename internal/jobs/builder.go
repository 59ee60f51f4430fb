// Package jobs enumerates the scenario-generation work list for a partition.
package jobs

import (
	"fmt"
	"math/rand"

	"intentforge/internal/models"
)

// Build returns the job sequence for one partition: per-action count jobs
// for every action kind, themes and styles assigned cyclically, then the
// whole list shuffled in place (Fisher-Yates) so dispatch order does not
// cluster same-theme or same-action requests against the oracle.
//
// Global indexes are offset + build position, assigned before the shuffle,
// so numbering stays unique when several partitions run in one invocation.
// The returned sequence order is the order results will be emitted in.
func Build(p models.PartitionConfig, offset int, rng *rand.Rand, lists Lists) ([]models.Job, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(lists.Styles) == 0 {
		return nil, fmt.Errorf("partition %q: style list must not be empty", p.Name)
	}

	actions := models.Actions()
	jobs := make([]models.Job, 0, p.PerAction*len(actions))
	for _, action := range actions {
		themes := lists.Themes[action]
		if len(themes) == 0 {
			return nil, fmt.Errorf("partition %q: no themes configured for action %s", p.Name, action)
		}
		for i := 0; i < p.PerAction; i++ {
			jobs = append(jobs, models.Job{
				Action:      action,
				Partition:   p.Name,
				Theme:       themes[i%len(themes)],
				Index:       i,
				GlobalIndex: offset + len(jobs),
				Style:       lists.Styles[i%len(lists.Styles)],
			})
		}
	}

	rng.Shuffle(len(jobs), func(i, j int) {
		jobs[i], jobs[j] = jobs[j], jobs[i]
	})
	return jobs, nil
}
