package cli

// Inspection mode names accepted by --mode.
const (
	ModeReflect = "reflect"
	ModeSource  = "source"
)

// Config stores CLI options for a single demo run.
type Config struct {
	Mode        string
	Library     string
	Classes     []string
	Snippet     string
	ShowVersion bool
}

// DefaultSnippet is parsed when no --snippet override is given.
const DefaultSnippet = `pl.DataFrame({"x": [1,2,3]}).filter(x > 1).select("x")`

// DefaultClasses are the class names searched for during discovery.
func DefaultClasses() []string {
	return []string{"DataFrame", "LazyFrame", "Expr"}
}
