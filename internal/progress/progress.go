// Package progress derives a completion score from a resume document.
package progress

import (
	"math"

	"github.com/RohanMakvana24/Resume-Pilot/internal/types"
)

// Report holds the completion percentage and the sections still missing,
// in the fixed evaluation order.
type Report struct {
	Percent  int      `json:"percent"`
	Missing  []string `json:"missing"`
	Complete []string `json:"complete"`
}

// sections is the fixed evaluation order, matching the editor step order.
var sections = []struct {
	label string
	done  func(*types.Resume) bool
}{
	{"Personal Details", func(r *types.Resume) bool {
		return r.FirstName != "" || r.LastName != "" || r.JobTitle != "" ||
			r.Address != "" || r.Phone != "" || r.Email != ""
	}},
	{"Summary", func(r *types.Resume) bool { return r.Summary != "" }},
	{"Experience", func(r *types.Resume) bool { return len(r.Experience) > 0 }},
	{"Projects", func(r *types.Resume) bool { return len(r.Projects) > 0 }},
	{"Education", func(r *types.Resume) bool { return len(r.Education) > 0 }},
	{"Skills", func(r *types.Resume) bool { return len(r.Skills) > 0 }},
}

// Evaluate computes the completion report for a document. The section count
// is small and fixed, so this recomputes from scratch on every call.
func Evaluate(r *types.Resume) Report {
	report := Report{Missing: []string{}, Complete: []string{}}
	if r == nil {
		for _, s := range sections {
			report.Missing = append(report.Missing, s.label)
		}
		return report
	}

	for _, s := range sections {
		if s.done(r) {
			report.Complete = append(report.Complete, s.label)
		} else {
			report.Missing = append(report.Missing, s.label)
		}
	}
	report.Percent = int(math.Round(100 * float64(len(report.Complete)) / float64(len(sections))))
	return report
}
