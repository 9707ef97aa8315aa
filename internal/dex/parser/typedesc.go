package parser

import "strings"

// TypeDescriptorToName converts a JVM-style type descriptor to a
// human-readable type name (§4.5). Pure function, no I/O:
//
//	V -> void, Z -> boolean, B -> byte, S -> short, C -> char,
//	I -> int, J -> long, F -> float, D -> double
//	L<name>; -> <name> with '/' replaced by '.'
//	[<rest> -> TypeDescriptorToName(<rest>) + "[]"
//
// Any other lead character yields "unknown"; an empty or
// whitespace-only descriptor yields "".
func TypeDescriptorToName(descriptor string) string {
	if strings.TrimSpace(descriptor) == "" {
		return ""
	}

	switch descriptor[0] {
	case 'V':
		return "void"
	case 'Z':
		return "boolean"
	case 'B':
		return "byte"
	case 'S':
		return "short"
	case 'C':
		return "char"
	case 'I':
		return "int"
	case 'J':
		return "long"
	case 'F':
		return "float"
	case 'D':
		return "double"
	case 'L':
		inner := strings.TrimSuffix(strings.TrimPrefix(descriptor, "L"), ";")
		return strings.ReplaceAll(inner, "/", ".")
	case '[':
		return TypeDescriptorToName(descriptor[1:]) + "[]"
	default:
		return "unknown"
	}
}
