package lint

import (
	"sort"
	"sync"
)

// globalRegistry is the registry built-in rules add themselves to.
var globalRegistry = NewRegistry()

// Registry stores registered lint rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef // keyed by ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]RuleDef)}
}

// Register adds a rule, replacing any rule with the same ID.
func (r *Registry) Register(rule RuleDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = rule
}

// All returns all registered rules ordered by ID.
func (r *Registry) All() []RuleDef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]RuleDef, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

// ByID returns a rule by its ID.
func (r *Registry) ByID(id string) (RuleDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// ByGroup returns all rules in a group ordered by ID.
func (r *Registry) ByGroup(group string) []RuleDef {
	var rules []RuleDef
	for _, rule := range r.All() {
		if rule.Group == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Register adds a rule to the global registry.
// Call this from init() functions in rule packages.
func Register(rule RuleDef) {
	globalRegistry.Register(rule)
}

// GetAll returns all globally registered rules ordered by ID.
func GetAll() []RuleDef {
	return globalRegistry.All()
}

// GetByID returns a globally registered rule by its ID.
func GetByID(id string) (RuleDef, bool) {
	return globalRegistry.ByID(id)
}

// GetByGroup returns all globally registered rules in a group.
func GetByGroup(group string) []RuleDef {
	return globalRegistry.ByGroup(group)
}

// Count returns the number of globally registered rules.
func Count() int {
	return globalRegistry.Count()
}
