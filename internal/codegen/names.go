package codegen

// Variable names used in generated code.
const (
	inputName   = "input"
	symbolName  = "c"
	currentName = "current"
	nextName    = "next"
	activeName  = "active"
)

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
