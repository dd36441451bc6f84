package debuginfo

// syntheticTokens are the template-like wrappers the debugger-native
// dialect introduces. They never appear in native-dialect output, and
// visualizer definitions key on them.
var syntheticTokens = []string{
	"never$",
	"tuple$",
	"ptr_const$",
	"ptr_mut$",
	"ref$",
	"ref_mut$",
	"array$",
	"slice$",
	"dyn$",
	"assoc$",
	"enum$",
	"impl$",
	"vtable$",
	"vtable_type$",
	"recursive_type$",
	"CONST$",
}

var syntheticTokenSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(syntheticTokens))
	for _, tok := range syntheticTokens {
		m[tok] = struct{}{}
	}
	return m
}()

// SyntheticTokens returns a copy of the debugger-native wrapper tokens.
func SyntheticTokens() []string {
	return append([]string(nil), syntheticTokens...)
}

// IsSyntheticToken reports whether tok is one of the debugger-native
// wrapper tokens.
func IsSyntheticToken(tok string) bool {
	_, ok := syntheticTokenSet[tok]
	return ok
}
