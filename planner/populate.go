package planner

import (
	"context"
	"fmt"
	"log/slog"

	sdk "github.com/reportforge/sdk"
	"github.com/reportforge/sdk/graph"
	"github.com/reportforge/sdk/node"
)

// Planner drives generation for generator nodes living in a store.
type Planner struct {
	client           Client
	logger           *slog.Logger
	defaultIntensity Intensity
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) PlannerOption {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDefaultIntensity sets the intensity used when a generator node
// does not carry a valid one of its own. Defaults to focused.
func WithDefaultIntensity(intensity Intensity) PlannerOption {
	return func(p *Planner) {
		if intensity.IsValid() {
			p.defaultIntensity = intensity
		}
	}
}

// NewPlanner creates a Planner backed by the given client.
func NewPlanner(client Client, opts ...PlannerOption) *Planner {
	p := &Planner{
		client:           client,
		logger:           slog.Default(),
		defaultIntensity: IntensityFocused,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Populate generates a plan from the generator node's context and
// appends the rows to its connected test-case table. It returns the
// number of rows added.
//
// Any failure, from a missing target table to a malformed model
// response, leaves the table's existing rows untouched.
func (p *Planner) Populate(ctx context.Context, store *node.Store, generatorID string) (int, error) {
	const op = "planner.Populate"

	if p.client == nil {
		return 0, sdk.NewInputError(op, sdk.ErrCredentialMissing)
	}

	gen, ok := store.Get(generatorID)
	if !ok {
		return 0, sdk.NewInputError(op, fmt.Errorf("%w: %s", sdk.ErrNodeNotFound, generatorID))
	}
	payload, ok := gen.Payload.(node.AIGeneratorPayload)
	if !ok {
		return 0, sdk.NewInputError(op, fmt.Errorf("node %s is not a generator", generatorID))
	}

	snap := graph.Capture(store)
	table, err := graph.FindTargetTable(snap, generatorID)
	if err != nil {
		return 0, sdk.NewInputError(op, err)
	}

	intensity, parseErr := ParseIntensity(payload.Intensity)
	if parseErr != nil {
		intensity = p.defaultIntensity
	}

	rows, err := Generate(ctx, p.client, Request{
		Scope:       payload.Scope,
		MakerRole:   payload.MakerRole,
		CheckerRole: payload.CheckerRole,
		Action:      payload.Action,
		Intensity:   intensity,
	})
	if err != nil {
		return 0, err
	}

	existing := table.Payload.(node.TestCaseTablePayload).Rows
	store.Dispatch(table.ID, "rows", MergeRows(existing, rows))

	p.logger.Info("populated test plan", "generator", generatorID, "table", table.ID, "rows", len(rows))
	return len(rows), nil
}
