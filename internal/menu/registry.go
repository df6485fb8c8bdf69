package menu

import (
	"sort"
	"strings"
)

// Node is one entry of the menu tree. A node with a Loader opens a submenu;
// a node with an Action runs when one of its items is chosen.
type Node struct {
	ID       string
	Loader   Loader
	Action   Action
	Children map[string]*Node
}

// Registry indexes the menu tree by node id. Ids of the form "parent:key"
// hang off parent; bare ids hang off root.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// BuildRegistry wires CategoryLoaders and ActionHandlers into a tree.
func BuildRegistry() *Registry {
	r := &Registry{nodes: make(map[string]*Node)}
	r.root = r.node("root")
	r.root.Loader = func(Context) ([]Item, error) { return RootItems(), nil }
	for id, loader := range CategoryLoaders() {
		r.node(id).Loader = loader
	}
	for id, action := range ActionHandlers() {
		r.node(id).Action = action
	}

	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if id == "root" {
			continue
		}
		parent, key := splitID(id)
		r.node(parent).Children[key] = r.nodes[id]
	}
	return r
}

// node returns the node for id, creating an empty one when missing.
func (r *Registry) node(id string) *Node {
	if n, ok := r.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, Children: make(map[string]*Node)}
	r.nodes[id] = n
	return n
}

func (r *Registry) Root() *Node { return r.root }

// Find locates a node by id.
func (r *Registry) Find(id string) (*Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Child resolves key under parentID.
func (r *Registry) Child(parentID, key string) (*Node, bool) {
	parent, ok := r.nodes[parentID]
	if !ok {
		return nil, false
	}
	n, ok := parent.Children[key]
	return n, ok
}

func splitID(id string) (parent, key string) {
	i := strings.LastIndex(id, ":")
	if i < 0 {
		return "root", id
	}
	return id[:i], id[i+1:]
}
