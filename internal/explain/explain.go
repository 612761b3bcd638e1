// Package explain renders how a wire's value was derived.
package explain

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/pborges/wires/internal/circuit"
)

type Options struct {
	// MaxDepth limits how many levels below the root are expanded.
	// Zero means no limit.
	MaxDepth int
}

// Tree resolves name and returns its derivation, one branch per referenced
// wire. Each wire is expanded once; later references point back to it.
//
//	a = c OR 1 = 11107
//	└── c = b RSHIFT 2 = 11107
//	    └── b = 44430
func Tree(c *circuit.Circuit, name string, opts Options) (string, error) {
	if _, err := c.Resolve(name); err != nil {
		return "", err
	}
	info, ok := c.Lookup(name)
	if !ok {
		return undefined(name) + "\n", nil
	}
	root := treeprint.NewWithRoot(label(info))
	w := walker{c: c, opts: opts, seen: map[string]bool{name: true}}
	w.expand(root, info, 1)
	return root.String(), nil
}

type walker struct {
	c    *circuit.Circuit
	opts Options
	seen map[string]bool
}

func (w *walker) expand(t treeprint.Tree, info circuit.NodeInfo, depth int) {
	if info.Forced {
		return
	}
	deps := info.Spec.Deps()
	if len(deps) == 0 {
		return
	}
	if w.opts.MaxDepth > 0 && depth > w.opts.MaxDepth {
		t.AddNode("...")
		return
	}
	for _, dep := range deps {
		child, ok := w.c.Lookup(dep)
		switch {
		case !ok:
			t.AddNode(undefined(dep))
		case w.seen[dep]:
			t.AddNode(label(child) + " (see above)")
		default:
			w.seen[dep] = true
			if child.Forced || len(child.Spec.Deps()) == 0 {
				t.AddNode(label(child))
				continue
			}
			w.expand(t.AddBranch(label(child)), child, depth+1)
		}
	}
}

func label(info circuit.NodeInfo) string {
	if info.Forced {
		return fmt.Sprintf("%s = %d (forced)", info.Name, info.Value)
	}
	if info.Spec.Op == circuit.OpPassthrough && !info.Spec.Left.IsReference() {
		return fmt.Sprintf("%s = %d", info.Name, info.Value)
	}
	return fmt.Sprintf("%s = %s = %d", info.Name, info.Spec, info.Value)
}

func undefined(name string) string {
	return fmt.Sprintf("%s = 0 (undefined)", name)
}
