package metrics

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"

	"github.com/emporium-foundation/emporium/chain/exitcode"
)

// Tags
var (
	Instruction, _ = tag.NewKey("instruction")
	ExitCode, _    = tag.NewKey("exit_code")
)

// Measures
var (
	InstructionApplied = stats.Int64("market/instruction_applied", "Successfully applied instructions", stats.UnitDimensionless)
	InstructionFailed  = stats.Int64("market/instruction_failed", "Rejected instructions", stats.UnitDimensionless)
)

var (
	InstructionAppliedView = &view.View{
		Measure:     InstructionApplied,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Instruction},
	}
	InstructionFailedView = &view.View{
		Measure:     InstructionFailed,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Instruction, ExitCode},
	}
)

// DefaultViews is the set registered by the node at startup.
var DefaultViews = []*view.View{
	InstructionAppliedView,
	InstructionFailedView,
}

// RecordApply records the outcome of one instruction application.
func RecordApply(ctx context.Context, kind string, code exitcode.ExitCode) {
	if code.IsSuccess() {
		ctx, _ = tag.New(ctx, tag.Upsert(Instruction, kind))
		stats.Record(ctx, InstructionApplied.M(1))
		return
	}
	ctx, _ = tag.New(ctx, tag.Upsert(Instruction, kind), tag.Upsert(ExitCode, code.String()))
	stats.Record(ctx, InstructionFailed.M(1))
}
