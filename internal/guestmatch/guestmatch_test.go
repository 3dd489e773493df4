package guestmatch

import "testing"

func TestEvaluateExactDuplicate(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		existing  []string
	}{
		{"single word", "Maria", []string{"Maria"}},
		{"two words", "João Silva", []string{"Ana", "João Silva"}},
		{"three words", "João Silva Santos", []string{"João Silva Santos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.candidate, tt.existing)
			if d.Outcome != Duplicate {
				t.Errorf("outcome = %v, want Duplicate", d.Outcome)
			}
		})
	}
}

func TestEvaluateCaseSensitiveDuplicate(t *testing.T) {
	// "maria" is not an exact duplicate of "Maria", but it does share the
	// first name, so the one-word rule still asks for a full name.
	d := Evaluate("maria", []string{"Maria"})
	if d.Outcome != NeedFullName {
		t.Errorf("outcome = %v, want NeedFullName", d.Outcome)
	}
	if d.Match != "Maria" {
		t.Errorf("match = %q, want %q", d.Match, "Maria")
	}
}

func TestEvaluateOneWordFirstNameCollision(t *testing.T) {
	d := Evaluate("Carlos", []string{"Ana Souza", "Carlos Pereira"})
	if d.Outcome != NeedFullName {
		t.Fatalf("outcome = %v, want NeedFullName", d.Outcome)
	}
	if d.Match != "Carlos Pereira" {
		t.Errorf("match = %q, want %q", d.Match, "Carlos Pereira")
	}
}

func TestEvaluateOneWordNoCollision(t *testing.T) {
	d := Evaluate("Pedro", []string{"Ana Souza", "Carlos Pereira"})
	if d.Outcome != Accept {
		t.Errorf("outcome = %v, want Accept", d.Outcome)
	}
}

func TestEvaluateTwoWordSurnamePrefix(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		existing  []string
		want      Outcome
		wantMatch string
	}{
		{
			name:      "shared three-char prefix rejected",
			candidate: "João Silva",
			existing:  []string{"João Silveira"},
			want:      NeedFullerName,
			wantMatch: "João Silveira",
		},
		{
			name:      "different surname accepted",
			candidate: "João Santos",
			existing:  []string{"João Silveira"},
			want:      Accept,
		},
		{
			name:      "prefix compare is case-insensitive",
			candidate: "João SILVA",
			existing:  []string{"João silveira"},
			want:      NeedFullerName,
			wantMatch: "João silveira",
		},
		{
			name:      "one-word existing name is skipped by the prefix rule",
			candidate: "João Silva",
			existing:  []string{"João"},
			want:      Accept,
		},
		{
			name:      "accented prefix handled as runes",
			candidate: "José Ávila",
			existing:  []string{"José Ávalos"},
			want:      NeedFullerName,
			wantMatch: "José Ávalos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.candidate, tt.existing)
			if d.Outcome != tt.want {
				t.Fatalf("outcome = %v, want %v", d.Outcome, tt.want)
			}
			if d.Match != tt.wantMatch {
				t.Errorf("match = %q, want %q", d.Match, tt.wantMatch)
			}
		})
	}
}

func TestEvaluateThreeWordsAlwaysAccepted(t *testing.T) {
	// With three or more words only an exact duplicate blocks the name,
	// no matter how close it is to existing entries.
	d := Evaluate("João Silva Santos", []string{"João Silva", "João Silva Souza"})
	if d.Outcome != Accept {
		t.Errorf("outcome = %v, want Accept", d.Outcome)
	}
}

func TestEvaluateCaseInsensitiveFullNameExcluded(t *testing.T) {
	// "joão silva" differs from "João Silva" only in case. It is not in the
	// similar set, so it is accepted rather than asked for a fuller name.
	d := Evaluate("joão silva", []string{"João Silva"})
	if d.Outcome != Accept {
		t.Errorf("outcome = %v, want Accept", d.Outcome)
	}
}

func TestEvaluateEmptyList(t *testing.T) {
	d := Evaluate("Maria", nil)
	if d.Outcome != Accept {
		t.Errorf("outcome = %v, want Accept", d.Outcome)
	}
}

func TestFirstNameMatch(t *testing.T) {
	existing := []string{"Ana Souza", "Carlos Pereira", "carlos lima"}

	match, found := FirstNameMatch("Carlos", existing)
	if !found {
		t.Fatal("expected a match for Carlos")
	}
	if match != "Carlos Pereira" {
		t.Errorf("match = %q, want first match %q", match, "Carlos Pereira")
	}

	if _, found := FirstNameMatch("Pedro", existing); found {
		t.Error("Pedro should not match")
	}

	// Case-insensitive on the first word.
	match, found = FirstNameMatch("ANA", existing)
	if !found || match != "Ana Souza" {
		t.Errorf("match = %q, found = %v, want %q", match, found, "Ana Souza")
	}

	// Unlike Evaluate, an identical full name still counts as a match.
	match, found = FirstNameMatch("Ana Souza", existing)
	if !found || match != "Ana Souza" {
		t.Errorf("match = %q, found = %v, want identical name matched", match, found)
	}

	// Accented first letters fold too.
	match, found = FirstNameMatch("ângela", []string{"Ângela Silva"})
	if !found || match != "Ângela Silva" {
		t.Errorf("match = %q, found = %v, want accented first name matched", match, found)
	}
}

func TestPrefix3(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"Silva", "sil"},
		{"Silveira", "sil"},
		{"Sá", "sá"},
		{"ÁVILA", "ávi"},
	}

	for _, tt := range tests {
		if got := prefix3(tt.word); got != tt.want {
			t.Errorf("prefix3(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}
