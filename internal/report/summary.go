// Package report computes aggregate views over a set of applicants.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/hireflow/internal/model"
)

// Summary holds grouped counts for a subset of applicants.
type Summary struct {
	ByJob    map[string]int
	ByStatus map[string]int
	Total    int
}

// Summarize counts applicants per job position and per status. Values that
// differ only in case or surrounding space share a group, labelled with
// the first spelling seen, matching how the j/ and s/ criteria compare.
func Summarize(applicants []model.Applicant) Summary {
	jobs, statuses := newGrouper(), newGrouper()
	for _, a := range applicants {
		jobs.add(a.JobPosition)
		statuses.add(string(a.Status))
	}
	return Summary{
		Total:    len(applicants),
		ByJob:    jobs.counts,
		ByStatus: statuses.counts,
	}
}

type grouper struct {
	labels map[string]string
	counts map[string]int
}

func newGrouper() *grouper {
	return &grouper{labels: make(map[string]string), counts: make(map[string]int)}
}

func (g *grouper) add(value string) {
	value = strings.TrimSpace(value)
	key := strings.ToLower(value)
	label, ok := g.labels[key]
	if !ok {
		label = value
		g.labels[key] = label
	}
	g.counts[label]++
}

// Render formats the summary for display.
func (s Summary) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total applicants: %d\n", s.Total)
	fmt.Fprintf(&b, "Job positions: %s\n", Fragments(s.ByJob))
	fmt.Fprintf(&b, "Statuses: %s", Fragments(s.ByStatus))
	return b.String()
}

// Fragments renders counts as "key: count" pairs joined by ", ".
// Keys are sorted so the output is stable.
func Fragments(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
