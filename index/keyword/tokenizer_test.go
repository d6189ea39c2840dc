package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Token
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "Python, SQL; Airflow!",
			want: []Token{
				{Term: "python", Position: 0},
				{Term: "sql", Position: 1},
				{Term: "airflow", Position: 2},
			},
		},
		{
			name: "positions count kept tokens",
			text: "expert in data and sql",
			want: []Token{
				{Term: "expert", Position: 0},
				{Term: "data", Position: 1},
				{Term: "sql", Position: 2},
			},
		},
		{
			name: "stems while tokenizing",
			text: "Building data-pipelines",
			want: []Token{
				{Term: "build", Position: 0},
				{Term: "data", Position: 1},
				{Term: "pipelin", Position: 2},
			},
		},
		{
			name: "drops single letters and stop words",
			text: "a C and I",
			want: []Token{},
		},
		{
			name: "stop words are matched after lowercasing",
			text: "The THE the",
			want: []Token{},
		},
		{
			name: "symbols only",
			text: "--- !!!",
			want: []Token{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"engineering", "engineer"},
		{"engineers", "engineer"},
		{"developers", "developer"},
		{"companies", "company"},
		{"abilities", "ability"},
		{"pipelines", "pipelin"},
		{"skills", "skill"},
		{"quickly", "quick"},
		{"running", "runn"},
		{"visualization", "visualizat"},
		{"applications", "application"},
		// The ss rule keeps class from losing its plural-looking tail.
		{"class", "class"},
		// Too short for the matching rule's minimum length.
		{"ed", "ed"},
		// No matching suffix.
		{"go", "go"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, stem(tt.word))
		})
	}
}
