// internal/writers/jsonl.go
package writers

import (
	"io"

	"qctriage/internal/jsonlutil"
	"qctriage/internal/partition"
	"qctriage/pkg/api"
)

// ToAPIAssignment converts one placement to its wire form.
func ToAPIAssignment(a partition.Assignment) api.AssignmentV1 {
	return api.AssignmentV1{
		Index:    a.Index,
		ID:       a.Record.ID,
		FullID:   a.Full,
		BaseID:   a.Base,
		Category: int(a.Category),
		Reason:   a.Reason.String(),
	}
}

// WriteAssignments writes all assignments as JSONL.
func WriteAssignments(out io.Writer, asg []partition.Assignment) error {
	return jsonlutil.WriteAll(out, asg, ToAPIAssignment, IsBrokenPipe)
}
