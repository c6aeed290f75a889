package weburl

// ParseOption configures a single call to Parse, following the
// functional-options shape of
// other_examples/5851f230_nlnwa-whatwg-url__url-parseroptions.go.go's
// ParserOption/funcParserOption (see DESIGN.md).
type ParseOption interface {
	apply(*parseOptions)
}

type funcParseOption struct {
	f func(*parseOptions)
}

func (o *funcParseOption) apply(po *parseOptions) { o.f(po) }

// defaultSpecialSchemes is the WHATWG special-scheme table: scheme name
// to default port, with file: carrying no port (represented as -1).
var defaultSpecialSchemes = map[string]int{
	"ftp":   21,
	"file":  -1,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

type parseOptions struct {
	base                *URL
	validationErrorFunc func(op, message string)
	specialSchemes      map[string]int
}

func newParseOptions(opts []ParseOption) *parseOptions {
	po := &parseOptions{specialSchemes: defaultSpecialSchemes}
	for _, o := range opts {
		o.apply(po)
	}
	return po
}

func (po *parseOptions) reportValidationError(op, message string) {
	if po.validationErrorFunc != nil {
		po.validationErrorFunc(op, message)
	}
}

func (po *parseOptions) isSpecialScheme(scheme string) (defaultPort int, ok bool) {
	p, ok := po.specialSchemes[scheme]
	return p, ok
}

// WithBaseURL resolves the input against base, as in step 1 of the
// WHATWG "basic URL parser" when a base URL is supplied.
func WithBaseURL(base *URL) ParseOption {
	return &funcParseOption{func(po *parseOptions) { po.base = base }}
}

// WithValidationErrorFunc registers a callback for non-fatal validation
// errors (spec.md §7, "Non-fatal (validation) errors"). The parser in
// parser.go reports no validation errors, so the callback is never
// invoked; only fatal failures are observable, as the error from Parse.
func WithValidationErrorFunc(f func(op, message string)) ParseOption {
	return &funcParseOption{func(po *parseOptions) { po.validationErrorFunc = f }}
}

// WithSpecialSchemes overrides the default table of special schemes and
// their default ports (file: uses -1 to mean "no default port").
func WithSpecialSchemes(schemes map[string]int) ParseOption {
	return &funcParseOption{func(po *parseOptions) { po.specialSchemes = schemes }}
}
