package testing

// PrefixCase is an MSYSTEM spelling and the line msysprefix should print for it.
type PrefixCase struct {
	MSYSTEM  string
	Expected string
}

// PrefixCases covers every table entry in several letter cases.
func PrefixCases() []PrefixCase {
	return []PrefixCase{
		{"mingw64", "x64-msvcrt\n"},
		{"MINGW64", "x64-msvcrt\n"},
		{"MinGW64", "x64-msvcrt\n"},
		{"mingw32", "msvcrt\n"},
		{"MINGW32", "msvcrt\n"},
		{"ucrt64", "x64-ucrt\n"},
		{"UCRT64", "x64-ucrt\n"},
		{"clang64", "x64-ucrt\n"},
		{"CLANG64", "x64-ucrt\n"},
		{"clangarm64", "x64-ucrt\n"},
		{"ClangArm64", "x64-ucrt\n"},
		{"clang32", "ucrt\n"},
		{"CLANG32", "ucrt\n"},
	}
}

// UnknownValues are MSYSTEM values that must produce no output.
func UnknownValues() []string {
	return []string{"foobar", "", "msys", "MSYS", "mingw", "clangarm32", " ucrt64"}
}
