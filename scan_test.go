package libdep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanIncludes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{name: "spaced directive", src: "  #  include <foo/bar.hpp>\n", want: []string{"foo/bar.hpp"}},
		{name: "quoted", src: "#include \"baz.hpp\"\n", want: []string{"baz.hpp"}},
		{name: "line comment", src: "// #include <x>\n", want: nil},
		{name: "tabs", src: "\t#\tinclude\t<t.hpp>\n", want: []string{"t.hpp"}},
		{name: "no space after keyword", src: "#include<n.hpp>\n", want: []string{"n.hpp"}},
		{name: "crlf", src: "#include <w.hpp>\r\n", want: []string{"w.hpp"}},
		{name: "unterminated takes rest of line", src: "#include <open.hpp\n", want: []string{"open.hpp"}},
		{name: "trailing comment", src: "#include <a.hpp> // why\n", want: []string{"a.hpp"}},
		{name: "macro target", src: "#include BOOST_HEADER\n", want: nil},
		{name: "include_next is not include", src: "#include_next <a.hpp>\n", want: nil},
		{name: "other directive", src: "#define X <a.hpp>\n#pragma once\n", want: nil},
		{name: "empty target", src: "#include <>\n", want: nil},
		{name: "too short", src: "#include <\n", want: nil},
		{name: "no trailing newline", src: "#include <last.hpp>", want: []string{"last.hpp"}},
		{
			name: "document order",
			src:  "#include <b.hpp>\nint x;\n#include \"a.hpp\"\n#  include <c.hpp>\n",
			want: []string{"b.hpp", "a.hpp", "c.hpp"},
		},
		{name: "empty", src: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ScanIncludes([]byte(tt.src)))
		})
	}
}

func TestLexicalExtractor(t *testing.T) {
	t.Parallel()
	x := LexicalExtractor()
	assert.Equal(t, "lexical", x.Name())

	got, err := x.Includes(context.Background(), "a.hpp", []byte("#include <a/b.hpp>\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b.hpp"}, got)
}
