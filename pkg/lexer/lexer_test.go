package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `int main() { return 42; }`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenInt_, "int"},
		{TokenIdent, "main"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenReturn, "return"},
		{TokenInt, "42"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % !`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenSlash, "/"},
		{TokenPercent, "%"},
		{TokenNot, "!"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"123", "123"},
		{"017", "017"},
		{"0x1F", "0x1F"},
		{"0XaB", "0XaB"},
	}

	for _, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Type != TokenInt {
			t.Errorf("%q: type = %s, want INT", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Errorf("%q: literal = %q, want %q", tt.input, tok.Literal, tt.expected)
		}
	}
}

func TestComments(t *testing.T) {
	input := `// line comment
/* block
   comment */ return /**/ 1 // trailing`

	l := New(input)
	expected := []TokenType{TokenReturn, TokenInt, TokenEOF}
	for i, want := range expected {
		if tok := l.NextToken(); tok.Type != want {
			t.Fatalf("tokens[%d] = %s, want %s", i, tok.Type, want)
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	l := New("return /* never closed")
	if tok := l.NextToken(); tok.Type != TokenReturn {
		t.Fatalf("first token = %s, want return", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != TokenEOF {
		t.Fatalf("second token = %s, want EOF", tok.Type)
	}
}

func TestIllegal(t *testing.T) {
	tok := New("@").NextToken()
	if tok.Type != TokenIllegal || tok.Literal != "@" {
		t.Errorf("got %s %q, want ILLEGAL \"@\"", tok.Type, tok.Literal)
	}
}

func TestPositions(t *testing.T) {
	input := "int\n  main"

	l := New(input)
	first := l.NextToken()
	second := l.NextToken()

	if first.Line != 1 || first.Column != 1 {
		t.Errorf("int at %d:%d, want 1:1", first.Line, first.Column)
	}
	if second.Line != 2 || second.Column != 3 {
		t.Errorf("main at %d:%d, want 2:3", second.Line, second.Column)
	}
}

func TestLookupIdent(t *testing.T) {
	if LookupIdent("return") != TokenReturn {
		t.Error("return should be a keyword")
	}
	if LookupIdent("int") != TokenInt_ {
		t.Error("int should be a keyword")
	}
	if LookupIdent("integer") != TokenIdent {
		t.Error("integer should be an identifier")
	}
}
