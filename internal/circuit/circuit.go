package circuit

import (
	"sort"

	"github.com/hashicorp/go-hclog"
)

type nodeState int

const (
	stateNotStarted nodeState = iota
	stateInProgress
	stateDone
)

type node struct {
	name   string
	spec   NodeSpec
	state  nodeState
	value  uint16
	forced bool
}

// NodeInfo is a read-only snapshot of a wire.
type NodeInfo struct {
	Name   string
	Spec   NodeSpec
	Value  uint16
	Cached bool
	Forced bool
}

type Option func(*Circuit)

// WithLogger routes evaluation events to l. Value assignments and cache
// clears are logged at trace level.
func WithLogger(l hclog.Logger) Option {
	return func(c *Circuit) {
		if l != nil {
			c.logger = l.Named("circuit")
		}
	}
}

// Circuit maps wire names to their definitions and cached values.
// A Circuit is not safe for concurrent use.
type Circuit struct {
	nodes  map[string]*node
	logger hclog.Logger
	evals  int
}

func New(opts ...Option) *Circuit {
	c := &Circuit{
		nodes:  make(map[string]*node),
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register parses rule and stores it under name, replacing any earlier
// definition. The circuit is left untouched when rule is malformed.
func (c *Circuit) Register(name, rule string) error {
	spec, err := ParseRule(rule)
	if err != nil {
		return &NodeError{Name: name, Err: err}
	}
	c.Add(name, spec)
	return nil
}

// Add stores an already parsed spec under name.
func (c *Circuit) Add(name string, spec NodeSpec) {
	c.nodes[name] = &node{name: name, spec: spec}
}

// Resolve returns the value of the named wire, computing and caching every
// wire it depends on. Wires that were never registered read as 0.
//
// Evaluation walks an explicit stack rather than recursing, so the depth of
// a dependency chain is limited only by memory. A wire that is reached again
// while it is still on the stack yields a *CycleError; every wire that was
// in progress is reset so the circuit can be repaired and resolved again.
func (c *Circuit) Resolve(name string) (uint16, error) {
	root, ok := c.nodes[name]
	if !ok {
		c.logger.Debug("undefined wire reads as zero", "wire", name)
		return 0, nil
	}
	if root.state == stateDone {
		return root.value, nil
	}

	root.state = stateInProgress
	stack := []*node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		next, err := c.pendingDep(n, stack)
		if err != nil {
			for _, s := range stack {
				s.state = stateNotStarted
			}
			c.logger.Debug("evaluation aborted", "wire", name, "error", err)
			return 0, err
		}
		if next != nil {
			next.state = stateInProgress
			stack = append(stack, next)
			continue
		}

		left := c.operand(n.spec.Left)
		var right uint16
		if !n.spec.Op.Unary() {
			right = c.operand(n.spec.Right)
		}
		c.evals++
		c.set(n, n.spec.Eval(left, right))
		stack = stack[:len(stack)-1]
	}
	return root.value, nil
}

// MustResolve is like Resolve but panics on a circular reference.
func (c *Circuit) MustResolve(name string) uint16 {
	v, err := c.Resolve(name)
	if err != nil {
		panic(err)
	}
	return v
}

// pendingDep returns the first dependency of n that has not been computed.
func (c *Circuit) pendingDep(n *node, stack []*node) (*node, error) {
	for _, dep := range n.spec.Deps() {
		d, ok := c.nodes[dep]
		if !ok {
			continue
		}
		switch d.state {
		case stateNotStarted:
			return d, nil
		case stateInProgress:
			return nil, newCycleError(d, stack)
		}
	}
	return nil, nil
}

func newCycleError(reentered *node, stack []*node) *CycleError {
	start := 0
	for i, s := range stack {
		if s == reentered {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, s := range stack[start:] {
		path = append(path, s.name)
	}
	path = append(path, reentered.name)
	return &CycleError{Node: reentered.name, Path: path}
}

// operand reads an operand whose dependencies are already resolved.
func (c *Circuit) operand(o Operand) uint16 {
	switch o.Kind {
	case OperandLiteral:
		return o.Value
	case OperandReference:
		if n, ok := c.nodes[o.Name]; ok {
			return n.value
		}
		c.logger.Debug("undefined wire reads as zero", "wire", o.Name)
	}
	return 0
}

func (c *Circuit) set(n *node, v uint16) {
	n.value = v
	n.state = stateDone
	c.logger.Trace("setting value", "wire", n.name, "value", v)
}

// InvalidateAll drops every cached value, forced ones included.
func (c *Circuit) InvalidateAll() {
	for _, n := range c.nodes {
		n.state = stateNotStarted
		n.value = 0
		n.forced = false
		c.logger.Trace("clearing value", "wire", n.name)
	}
}

// Force pins the named wire to v until the next InvalidateAll. Forcing a
// wire that does not exist does nothing.
func (c *Circuit) Force(name string, v uint16) {
	n, ok := c.nodes[name]
	if !ok {
		c.logger.Debug("ignoring force of undefined wire", "wire", name)
		return
	}
	n.forced = true
	c.set(n, v)
	c.logger.Debug("forced value", "wire", name, "value", v)
}

func (c *Circuit) Len() int { return len(c.nodes) }

func (c *Circuit) Has(name string) bool {
	_, ok := c.nodes[name]
	return ok
}

// Names returns all wire names in sorted order.
func (c *Circuit) Names() []string {
	names := make([]string, 0, len(c.nodes))
	for name := range c.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Circuit) Lookup(name string) (NodeInfo, bool) {
	n, ok := c.nodes[name]
	if !ok {
		return NodeInfo{}, false
	}
	return NodeInfo{
		Name:   n.name,
		Spec:   n.spec,
		Value:  n.value,
		Cached: n.state == stateDone,
		Forced: n.forced,
	}, true
}

// Evaluations counts how many times a spec has been evaluated since the
// circuit was created. Cache hits and forced values do not count.
func (c *Circuit) Evaluations() int { return c.evals }
