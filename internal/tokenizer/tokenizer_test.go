package tokenizer

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"lowercases", "Pasta Carbonara", "pasta carbonara"},
		{"folds ae", "Kjærlighet", "kjaerlighet"},
		{"folds oe", "Grønnsaker", "groennsaker"},
		{"folds aa", "Blåbær", "blaabaer"},
		{"folds uppercase after lowering", "GRØNNSAKER", "groennsaker"},
		{"punctuation becomes space", "salt, pepper & olje!", "salt pepper olje"},
		{"collapses whitespace", "  a\t\tb \n c  ", "a b c"},
		{"other accents stripped", "crème brûlée", "cr me br l e"},
		{"digits kept", "2 dl melk", "2 dl melk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"only symbols", "!@#$%^", []string{}},
		{"simple words", "Fløtegratinerte poteter", []string{"floetegratinerte", "poteter"}},
		{"drops single characters", "a b cd e", []string{"cd"}},
		{"keeps folded single letter", "ø", []string{"oe"}},
		{"numbers", "400 gram kjøttdeig", []string{"400", "gram", "kjoettdeig"}},
		{"split on symbols", "salt/pepper", []string{"salt", "pepper"}},
		{"duplicates preserved", "salt og salt", []string{"salt", "og", "salt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize_CaseAndDiacriticInvariance(t *testing.T) {
	variants := []string{"Grønnsaker", "grønnsaker", "GRØNNSAKER"}
	want := Tokenize(variants[0])
	for _, v := range variants[1:] {
		if got := Tokenize(v); !reflect.DeepEqual(got, want) {
			t.Errorf("Tokenize(%q) = %v, want %v", v, got, want)
		}
	}
}
