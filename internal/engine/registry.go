package engine

import "context"

// Runner executes a stage.
type Runner func(ctx context.Context, in Step, deps Deps) (Step, error)

var registry = map[string]Runner{}

// Register adds a stage runner. Stages register themselves in init.
func Register(name string, r Runner) {
	registry[name] = r
}

// Run executes a registered stage by name.
func Run(ctx context.Context, name string, in Step, deps Deps) (Step, error) {
	r, ok := registry[name]
	if !ok {
		return Step{}, ErrUnknown{name: name}
	}
	return r(ctx, in, deps)
}

// ErrUnknown is returned when a stage is not found.
type ErrUnknown struct{ name string }

func (e ErrUnknown) Error() string { return "unknown stage: " + e.name }
