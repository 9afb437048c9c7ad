package prmpt

import (
	"fmt"
	"sort"
	"strings"
)

// Variadic as a function's MaxArgs lifts the upper bound on arguments.
const Variadic = -1

// Func is the implementation of a prmpt function. It receives the shared
// render context followed by the evaluated required arguments and then the
// evaluated optional arguments.
type Func func(ctx *Context, args ...string) (string, error)

// Function describes one invokable capability.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int // Variadic for no limit
	Help    string
	Call    Func
}

// Provider is a group of functions registered together, e.g. the colour
// wrappers or the VCS readers.
type Provider interface {
	List() []Function
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func() []Function

func (f ProviderFunc) List() []Function {
	return f()
}

// Registry is a name-keyed table of functions. Later registrations of the
// same name replace earlier ones.
type Registry struct {
	functions map[string]Function
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{functions: make(map[string]Function, 128)}
}

// Register adds fn to the registry. Names starting with an underscore are
// private and rejected.
func (r *Registry) Register(fn Function) error {
	switch {
	case fn.Name == "":
		return fmt.Errorf("function has no name")
	case strings.HasPrefix(fn.Name, "_"):
		return fmt.Errorf("function %q is private and cannot be registered", fn.Name)
	case fn.Call == nil:
		return fmt.Errorf("function %q has no implementation", fn.Name)
	}

	r.functions[fn.Name] = fn
	return nil
}

// RegisterProvider registers every function listed by p.
func (r *Registry) RegisterProvider(p Provider) error {
	for _, fn := range p.List() {
		if err := r.Register(fn); err != nil {
			return err
		}
	}
	return nil
}

// Lookup finds a function by name.
func (r *Registry) Lookup(name string) (Function, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// Functions returns all registered functions sorted by name.
func (r *Registry) Functions() []Function {
	out := make([]Function, 0, len(r.functions))
	for _, fn := range r.functions {
		out = append(out, fn)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Call looks up name, checks the argument count and invokes the function.
func (r *Registry) Call(ctx *Context, name string, args ...string) (string, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return "", &UnknownFunctionError{Name: name}
	}
	if err := fn.checkArity(len(args)); err != nil {
		return "", err
	}
	return fn.Call(ctx, args...)
}

func (fn Function) checkArity(n int) error {
	if n >= fn.MinArgs && (fn.MaxArgs == Variadic || n <= fn.MaxArgs) {
		return nil
	}

	var want string
	switch {
	case fn.MaxArgs == Variadic:
		want = fmt.Sprintf("at least %d", fn.MinArgs)
	case fn.MinArgs == fn.MaxArgs:
		want = fmt.Sprintf("%d", fn.MinArgs)
	default:
		want = fmt.Sprintf("%d to %d", fn.MinArgs, fn.MaxArgs)
	}

	return Invalidf("%s expects %s argument(s), got %d", fn.Name, want, n)
}

// Usage returns a short signature such as "join{}{...}" or "green{}[]".
func (fn Function) Usage() string {
	var sb strings.Builder
	sb.WriteString(fn.Name)
	for i := 0; i < fn.MinArgs; i++ {
		sb.WriteString("{}")
	}
	switch {
	case fn.MaxArgs == Variadic:
		sb.WriteString("{...}")
	default:
		for i := fn.MinArgs; i < fn.MaxArgs; i++ {
			sb.WriteString("[]")
		}
	}
	return sb.String()
}
