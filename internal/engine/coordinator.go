package engine

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aaronsb/think-strategies/internal/config"
	"github.com/aaronsb/think-strategies/internal/model"
	"github.com/aaronsb/think-strategies/internal/storage"
)

// SubmitRequest carries one submitted step. NextThoughtNeeded is a
// pointer so a missing flag is distinguishable from false. Extra holds
// the strategy-specific fields the resolver matches against.
type SubmitRequest struct {
	Thought           string
	ThoughtNumber     int
	TotalThoughts     int
	NextThoughtNeeded *bool
	Strategy          string
	CurrentStage      string
	IsRevision        bool
	RevisesThought    int
	BranchFromThought int
	BranchID          string
	PreserveHistory   bool
	Purpose           string
	Extra             map[string]any
}

// fieldSet flattens the request into the field map the resolver sees:
// the base fields, set markers, and every strategy-specific extra.
func (r *SubmitRequest) fieldSet() map[string]any {
	fields := map[string]any{
		"thought":       r.Thought,
		"thoughtNumber": r.ThoughtNumber,
		"totalThoughts": r.TotalThoughts,
	}
	if r.NextThoughtNeeded != nil {
		fields["nextThoughtNeeded"] = *r.NextThoughtNeeded
	}
	if r.Strategy != "" {
		fields["strategy"] = r.Strategy
	}
	if r.CurrentStage != "" {
		fields["currentStage"] = r.CurrentStage
	}
	if r.IsRevision {
		fields["isRevision"] = true
		fields["revisesThought"] = r.RevisesThought
	}
	if r.BranchFromThought > 0 {
		fields["branchFromThought"] = r.BranchFromThought
	}
	if r.BranchID != "" {
		fields["branchId"] = r.BranchID
	}
	if r.PreserveHistory {
		fields["preserveHistory"] = true
	}
	if r.Purpose != "" {
		fields["sessionPurpose"] = r.Purpose
	}
	for k, v := range r.Extra {
		if v == nil {
			continue
		}
		fields[k] = v
	}
	return fields
}

// Coordinator drives one thinking session: it validates submitted steps,
// applies the resolver's verdict to the stage machine, appends accepted
// steps to the ledger and persists after every step. All failure paths
// resolve to a structured response, never a panic or propagated error.
type Coordinator struct {
	mu       sync.Mutex
	table    *config.Table
	resolver *ActionResolver
	store    storage.Store
	log      *zap.Logger
	render   io.Writer

	sessionID   string
	strategy    model.Strategy
	stage       *StageMachine
	ledger      *ThoughtLedger
	purpose     string
	createdAt   time.Time
	initialized bool
	completed   bool
}

// NewCoordinator returns a coordinator over the given routing table and
// store. The store may be nil for ephemeral (unpersisted) operation.
func NewCoordinator(table *config.Table, store storage.Store, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		table:    table,
		resolver: NewActionResolver(table),
		store:    store,
		log:      logger,
		ledger:   NewThoughtLedger(),
	}
}

// SetRenderWriter directs the rendered thought blocks somewhere, usually
// the server's stderr. Nil disables rendering.
func (c *Coordinator) SetRenderWriter(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render = w
}

// Submit processes one step to completion, including the persistence
// write, before the next call proceeds.
func (c *Coordinator) Submit(ctx context.Context, req *SubmitRequest) *model.RoutingResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Strategy (re)selection: a strategy field on the first step (or with
	// no ordinal) starts a fresh session without appending a step, whether
	// or not one was already active. Any purpose attached at this moment
	// survives the reset.
	if req.Strategy != "" && req.ThoughtNumber <= 1 {
		return c.selectStrategy(req)
	}

	if !c.initialized {
		return &model.RoutingResponse{
			Status:              model.StatusWaitingForStrategy,
			Error:               "no strategy selected yet",
			AvailableStrategies: c.table.StrategyNames(),
		}
	}

	if resp := c.validate(req); resp != nil {
		return resp
	}

	// Mid-session switch: a strategy field past the first step means the
	// caller invoked the global switch action.
	if req.Strategy != "" && model.Strategy(req.Strategy) != c.strategy {
		if resp := c.switchStrategy(req); resp != nil {
			return resp
		}
	}

	// Explicit target stage bypasses action inference; an illegal request
	// is reported with no mutation.
	if req.CurrentStage != "" && req.CurrentStage != c.stage.CurrentStage() {
		if !c.stage.CanTransition(req.CurrentStage) {
			err := fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, c.stage.CurrentStage(), req.CurrentStage)
			return c.failResponse(err)
		}
		if err := c.stage.Transition(req.CurrentStage); err != nil {
			return c.failResponse(err)
		}
	} else {
		c.applyResolution(req)
	}

	if req.ThoughtNumber > req.TotalThoughts {
		req.TotalThoughts = req.ThoughtNumber
	}

	t := c.ledger.Append(c.thoughtFromRequest(req))
	if req.NextThoughtNeeded != nil {
		c.completed = !*req.NextThoughtNeeded
	}

	saved, saveErr := c.persist(ctx)
	c.renderStep(t)

	resp := c.routingResponse()
	resp.ThoughtNumber = t.ThoughtNumber
	resp.TotalThoughts = t.TotalThoughts
	resp.NextThoughtNeeded = t.NextThoughtNeeded
	resp.SessionSaved = saved
	if saveErr != nil {
		resp.SaveError = saveErr.Error()
	}
	return resp
}

// selectStrategy resets the session for a fresh strategy run. Unknown
// strategies fail with the configured strategy list so the caller can
// pick again.
func (c *Coordinator) selectStrategy(req *SubmitRequest) *model.RoutingResponse {
	strategy := model.Strategy(req.Strategy)
	if _, ok := c.table.Flow(strategy); !ok {
		return &model.RoutingResponse{
			Status:              model.StatusFailed,
			Error:               fmt.Sprintf("unknown strategy: %s", req.Strategy),
			AvailableStrategies: c.table.StrategyNames(),
		}
	}

	c.ledger.Reset()
	c.strategy = strategy
	c.stage = NewStageMachine(c.table, strategy)
	c.createdAt = time.Now().UTC()
	c.sessionID = fmt.Sprintf("%s-session-%s", strategy, c.createdAt.Format("20060102-150405"))
	c.initialized = true
	c.completed = false
	if req.Purpose != "" {
		c.purpose = req.Purpose
	}

	if c.stage.CurrentStage() == "" {
		c.initialized = false
		c.log.Error("strategy has no configured stages", zap.String("strategy", string(strategy)))
		return c.failResponse(fmt.Errorf("%w: strategy %s has no stages", ErrConfigurationGap, strategy))
	}

	c.log.Info("strategy selected",
		zap.String("strategy", string(strategy)),
		zap.String("sessionId", c.sessionID))

	resp := c.routingResponse()
	resp.NextThoughtNeeded = true
	return resp
}

// switchStrategy handles the global switch action mid-session: the
// session restarts under the new strategy, keeping the ledger verbatim
// only when the caller opted in. Returns a failure response for an
// unknown target, nil on success.
func (c *Coordinator) switchStrategy(req *SubmitRequest) *model.RoutingResponse {
	strategy := model.Strategy(req.Strategy)
	if _, ok := c.table.Flow(strategy); !ok {
		return &model.RoutingResponse{
			Status:              model.StatusFailed,
			Error:               fmt.Sprintf("unknown strategy: %s", req.Strategy),
			AvailableStrategies: c.table.StrategyNames(),
		}
	}

	c.log.Info("switching strategy",
		zap.String("from", string(c.strategy)),
		zap.String("to", string(strategy)),
		zap.Bool("preserveHistory", req.PreserveHistory))

	if !req.PreserveHistory {
		c.ledger.Reset()
	}
	c.strategy = strategy
	c.stage = NewStageMachine(c.table, strategy)
	c.createdAt = time.Now().UTC()
	c.sessionID = fmt.Sprintf("%s-session-%s", strategy, c.createdAt.Format("20060102-150405"))
	c.completed = false
	return nil
}

// validate enforces the core field contract. Failures leave all session
// state untouched.
func (c *Coordinator) validate(req *SubmitRequest) *model.RoutingResponse {
	switch {
	case req.Thought == "":
		return c.failResponse(fmt.Errorf("%w: thought must be non-empty text", ErrValidation))
	case req.ThoughtNumber <= 0:
		return c.failResponse(fmt.Errorf("%w: thoughtNumber must be a positive number", ErrValidation))
	case req.TotalThoughts <= 0:
		return c.failResponse(fmt.Errorf("%w: totalThoughts must be a positive number", ErrValidation))
	case req.NextThoughtNeeded == nil:
		return c.failResponse(fmt.Errorf("%w: nextThoughtNeeded must be a boolean", ErrValidation))
	}
	return nil
}

// applyResolution runs the resolver and applies a legal non-global
// transition. An illegal resolved stage is logged and ignored so
// configuration drift degrades instead of breaking the session.
func (c *Coordinator) applyResolution(req *SubmitRequest) {
	res := c.resolver.Resolve(c.strategy, c.stage.CurrentStage(), req.fieldSet())
	if res == nil || res.IsGlobal || res.NextStage == "" {
		return
	}
	if res.NextStage == c.stage.CurrentStage() {
		return
	}
	if err := c.stage.Transition(res.NextStage); err != nil {
		c.log.Warn("resolved action targets an unreachable stage",
			zap.String("action", res.ActionName),
			zap.String("from", c.stage.CurrentStage()),
			zap.String("to", res.NextStage),
			zap.Error(err))
	}
}

func (c *Coordinator) thoughtFromRequest(req *SubmitRequest) *model.Thought {
	t := &model.Thought{
		Thought:           req.Thought,
		ThoughtNumber:     req.ThoughtNumber,
		TotalThoughts:     req.TotalThoughts,
		Strategy:          c.strategy,
		CurrentStage:      c.stage.CurrentStage(),
		IsRevision:        req.IsRevision,
		RevisesThought:    req.RevisesThought,
		BranchFromThought: req.BranchFromThought,
		BranchID:          req.BranchID,
	}
	if req.NextThoughtNeeded != nil {
		t.NextThoughtNeeded = *req.NextThoughtNeeded
	}
	if len(req.Extra) > 0 {
		t.Extra = make(map[string]any, len(req.Extra))
		for k, v := range req.Extra {
			if v != nil {
				t.Extra[k] = v
			}
		}
	}
	return t
}

// persist writes the session snapshot. Failure is reported alongside the
// accepted in-memory state, never rolled back.
func (c *Coordinator) persist(ctx context.Context) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	if err := c.store.SaveSession(ctx, c.snapshotLocked()); err != nil {
		c.log.Error("session save failed", zap.String("sessionId", c.sessionID), zap.Error(err))
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return true, nil
}

func (c *Coordinator) renderStep(t *model.Thought) {
	if c.render == nil {
		return
	}
	fmt.Fprintln(c.render, renderThought(t))
}

// routingResponse builds the common success shape from current state.
func (c *Coordinator) routingResponse() *model.RoutingResponse {
	stage := c.stage.CurrentStage()
	return &model.RoutingResponse{
		CurrentStage:      stage,
		StageDescription:  c.table.StageDescription(c.strategy, stage),
		SessionID:         c.sessionID,
		Strategy:          c.strategy,
		AvailableActions:  c.resolver.ActionInfos(c.strategy, stage),
		CanSwitchStrategy: c.table.CanSwitchStrategy(c.strategy, stage),
		LedgerLength:      c.ledger.Len(),
	}
}

func (c *Coordinator) failResponse(err error) *model.RoutingResponse {
	return &model.RoutingResponse{
		Status: model.StatusFailed,
		Error:  err.Error(),
	}
}

// CreateBranch starts a branch from the thought with the given absolute
// number. The new step restarts branch-local numbering at 1.
func (c *Coordinator) CreateBranch(ctx context.Context, fromAbsolute int, branchID, content string) *model.RoutingResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return &model.RoutingResponse{
			Status:              model.StatusWaitingForStrategy,
			Error:               "no strategy selected yet",
			AvailableStrategies: c.table.StrategyNames(),
		}
	}
	if branchID == "" {
		return c.failResponse(fmt.Errorf("%w: branchId must be non-empty", ErrValidation))
	}
	if content == "" {
		return c.failResponse(fmt.Errorf("%w: thought must be non-empty text", ErrValidation))
	}
	if _, err := c.ledger.FindByAbsolute(fromAbsolute); err != nil {
		return c.failResponse(err)
	}

	t := c.ledger.Append(&model.Thought{
		Thought:           content,
		ThoughtNumber:     1,
		TotalThoughts:     5,
		NextThoughtNeeded: true,
		Strategy:          c.strategy,
		CurrentStage:      c.stage.CurrentStage(),
		BranchFromThought: fromAbsolute,
		BranchID:          branchID,
	})

	saved, saveErr := c.persist(ctx)
	c.renderStep(t)

	resp := c.routingResponse()
	resp.ThoughtNumber = t.ThoughtNumber
	resp.TotalThoughts = t.TotalThoughts
	resp.NextThoughtNeeded = true
	resp.SessionSaved = saved
	if saveErr != nil {
		resp.SaveError = saveErr.Error()
	}
	return resp
}

// Resume restores the coordinator from a stored session: the stage
// machine at the last recorded stage, and both ledger counters reseeded
// from the last stamped step.
func (c *Coordinator) Resume(sess *model.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.table.Flow(sess.Strategy); !ok {
		return fmt.Errorf("%w: strategy %s", ErrConfigurationGap, sess.Strategy)
	}

	c.strategy = sess.Strategy
	c.sessionID = sess.ID
	c.purpose = sess.Purpose
	c.createdAt = sess.CreatedAt
	c.completed = sess.Completed
	c.initialized = true

	c.stage = NewStageMachine(c.table, sess.Strategy)
	if sess.CurrentStage != "" {
		c.stage.ForceStage(sess.CurrentStage)
	}
	c.stage.RestoreHistory(sess.StageHistory)
	c.ledger.Restore(sess.Thoughts)

	c.log.Info("session resumed",
		zap.String("sessionId", sess.ID),
		zap.String("strategy", string(sess.Strategy)),
		zap.String("stage", c.stage.CurrentStage()),
		zap.Int("thoughts", c.ledger.Len()))
	return nil
}

// Snapshot captures the full session state for persistence or display.
func (c *Coordinator) Snapshot() *model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Coordinator) snapshotLocked() *model.Session {
	sess := &model.Session{
		ID:           c.sessionID,
		Strategy:     c.strategy,
		Purpose:      c.purpose,
		CurrentStage: c.stage.CurrentStage(),
		StageHistory: append([]string(nil), c.stage.History()...),
		Completed:    c.completed,
		CreatedAt:    c.createdAt,
		UpdatedAt:    time.Now().UTC(),
		Branches:     c.ledger.BranchIndex(),
	}
	for _, t := range c.ledger.Thoughts() {
		sess.Thoughts = append(sess.Thoughts, *t)
	}
	return sess
}

// SessionID returns the active session id, empty before selection.
func (c *Coordinator) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Strategy returns the active strategy, empty before selection.
func (c *Coordinator) Strategy() model.Strategy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strategy
}

// Stage returns the current stage, empty before selection.
func (c *Coordinator) Stage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage == nil {
		return ""
	}
	return c.stage.CurrentStage()
}

// Initialized reports whether a strategy has been selected.
func (c *Coordinator) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// LedgerLen returns the number of accepted steps in the active session.
func (c *Coordinator) LedgerLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Len()
}
