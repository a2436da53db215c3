package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Explain  string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Configuration Errors (E100-E109)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Duplicate item variant",
		Explain:  "Two item declarations use the same data type. Each data type may be declared once per adapter.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Item variant is not an adapter item",
		Explain:  "The declared data type does not implement the adapter's item type, so it can never appear in the list.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Placeholder declared twice",
		Explain:  "An adapter has at most one placeholder row.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Scope used outside its block",
		Explain:  "An item scope was retained and called after the block that received it returned.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Missing view factory",
		Explain:  "Every item declaration and the placeholder need a non-nil view factory.",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Placeholder type id collides with an item view type",
		Explain:  "Item view types are their declaration indexes; the placeholder type id must not fall in that range.",
	},

	// ============================================
	// Dispatch Errors (E110-E119)
	// ============================================

	"E110": {
		Category: CategoryDispatch,
		Message:  "Please set placeholder",
		Explain:  "A nil item was rendered but the adapter declares no placeholder.",
	},
	"E111": {
		Category: CategoryDispatch,
		Message:  "No item variant for data type",
		Explain:  "The list contains a data instance whose type was never declared with Item.",
	},
	"E112": {
		Category: CategoryDispatch,
		Message:  "Unknown view type",
		Explain:  "The host asked for a view type that this adapter never produced.",
	},
	"E113": {
		Category: CategoryDispatch,
		Message:  "Position out of range",
		Explain:  "The host asked for a position outside the current list.",
	},

	// ============================================
	// Paging Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryPaging,
		Message:  "Page load failed",
		Explain:  "The paged source returned an error. Call Retry to load the page again.",
	},
	"E131": {
		Category: CategoryPaging,
		Message:  "Invalid paging configuration",
		Explain:  "Page size must be positive and the prefetch distance must not be negative.",
	},

	// ============================================
	// File Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryFile,
		Message:  "Invalid listkit.json",
		Explain:  "The configuration file could not be parsed.",
	},
	"E141": {
		Category: CategoryFile,
		Message:  "listkit.json not found",
		Explain:  "No configuration file exists at the given path.",
	},
	"E142": {
		Category: CategoryFile,
		Message:  "Invalid configuration value",
		Explain:  "A configuration value is out of range.",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) Template {
	return registry[code]
}

// Codes returns all registered error codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
