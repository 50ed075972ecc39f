package livereload

// Strategy is the reload action picked for an asset tag.
type Strategy int

const (
	// StrategyPage reloads the target window. Unknown tags resolve to it.
	StrategyPage Strategy = iota
	// StrategyCSS swaps the document's stylesheets in place.
	StrategyCSS
)

const (
	TagCSS  = "css"
	TagPage = "page"
)

var strategies = map[string]Strategy{
	TagCSS:  StrategyCSS,
	TagPage: StrategyPage,
}

// Resolve maps an asset tag received from the server to its strategy.
func Resolve(tag string) Strategy {
	if s, ok := strategies[tag]; ok {
		return s
	}
	return StrategyPage
}

func (s Strategy) String() string {
	switch s {
	case StrategyCSS:
		return "css"
	case StrategyPage:
		return "page"
	default:
		return "unknown"
	}
}
