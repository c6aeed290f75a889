package weburl

// Schema parameterizes KVView's parsing/serialization, following
// spec.md §4.8's redesign note: an explicit struct of delimiter bytes
// and predicates, not stored closures over a particular query string or
// key-path-style accessors.
type Schema struct {
	IsPairDelimiter            func(b byte) bool
	PreferredPairDelimiter     byte
	PreferredKeyValueDelimiter byte
	DecodePlusAsSpace          bool
	EncodeSpaceAsPlus          bool
	ShouldPercentEncode        func(b byte) bool
}

func isAmpersand(b byte) bool { return b == '&' }

// FormEncodedSchema is application/x-www-form-urlencoded: '&'-delimited
// pairs, '='-separated key/value, space encoded as '+'.
var FormEncodedSchema = &Schema{
	IsPairDelimiter:            isAmpersand,
	PreferredPairDelimiter:     '&',
	PreferredKeyValueDelimiter: '=',
	DecodePlusAsSpace:          true,
	EncodeSpaceAsPlus:          true,
	ShouldPercentEncode:        FormEncoding.ShouldEncode,
}

// PercentEncodedSchema is '&'-delimited, '='-separated pairs with plain
// percent-encoding and no '+'/space substitution, suitable for
// non-form key-value data carried in a fragment.
var PercentEncodedSchema = &Schema{
	IsPairDelimiter:            isAmpersand,
	PreferredPairDelimiter:     '&',
	PreferredKeyValueDelimiter: '=',
	DecodePlusAsSpace:          false,
	EncodeSpaceAsPlus:          false,
	ShouldPercentEncode:        Component.ShouldEncode,
}
