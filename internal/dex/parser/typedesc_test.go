package parser

import "testing"

func TestTypeDescriptorToName(t *testing.T) {
	tests := []struct {
		descriptor string
		want       string
	}{
		{"V", "void"},
		{"Z", "boolean"},
		{"B", "byte"},
		{"S", "short"},
		{"C", "char"},
		{"I", "int"},
		{"J", "long"},
		{"F", "float"},
		{"D", "double"},
		{"Ljava/lang/String;", "java.lang.String"},
		{"[I", "int[]"},
		{"[[Ljava/lang/String;", "java.lang.String[][]"},
		{"", ""},
		{"   ", ""},
		{"Q", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			if got := TypeDescriptorToName(tt.descriptor); got != tt.want {
				t.Errorf("TypeDescriptorToName(%q) = %q, want %q", tt.descriptor, got, tt.want)
			}
		})
	}
}
