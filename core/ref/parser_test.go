package ref

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Locator
		wantNil bool
	}{
		{
			name:  "single verse",
			input: "John 3:16",
			want:  Locator{Book: "John", Chapter: 3, Verse: 16},
		},
		{
			name:  "abbreviated book",
			input: "Jn 3:16",
			want:  Locator{Book: "John", Chapter: 3, Verse: 16},
		},
		{
			name:  "same-chapter verse range",
			input: "Genesis 1:1-10",
			want:  Locator{Book: "Genesis", Chapter: 1, Verse: 1, EndVerse: 10},
		},
		{
			name:  "chapter range",
			input: "Ephesians 1-2",
			want:  Locator{Book: "Ephesians", Chapter: 1, EndChapter: 2},
		},
		{
			name:  "cross-chapter verse range",
			input: "Philippians 1:27-2:11",
			want:  Locator{Book: "Philippians", Chapter: 1, Verse: 27, EndChapter: 2, EndVerse: 11},
		},
		{
			name:  "whole chapter",
			input: "Obadiah 1",
			want:  Locator{Book: "Obadiah", Chapter: 1},
		},
		{
			name:  "numbered book",
			input: "1 John 4:7",
			want:  Locator{Book: "1 John", Chapter: 4, Verse: 7},
		},
		{
			name:  "fused numbered book",
			input: "1John 4:7",
			want:  Locator{Book: "1 John", Chapter: 4, Verse: 7},
		},
		{
			name:  "multi-word book",
			input: "Song of Solomon 2:1",
			want:  Locator{Book: "Song of Solomon", Chapter: 2, Verse: 1},
		},
		{
			name:  "en dash range",
			input: "Genesis 1:1–2",
			want:  Locator{Book: "Genesis", Chapter: 1, Verse: 1, EndVerse: 2},
		},
		{
			name:  "em dash chapter range",
			input: "Ephesians 1—2",
			want:  Locator{Book: "Ephesians", Chapter: 1, EndChapter: 2},
		},
		{
			name:  "degenerate cross-chapter collapses",
			input: "John 3:1-3:5",
			want:  Locator{Book: "John", Chapter: 3, Verse: 1, EndVerse: 5},
		},
		{
			name:  "surrounding whitespace",
			input: "  Luke 15:4  ",
			want:  Locator{Book: "Luke", Chapter: 15, Verse: 4},
		},
		{name: "empty", input: "", wantNil: true},
		{name: "whitespace only", input: "   ", wantNil: true},
		{name: "bare book name", input: "Genesis", wantNil: true},
		{name: "unknown book", input: "Hezekiah 3:16", wantNil: true},
		{name: "no book", input: "3:16", wantNil: true},
		{name: "trailing garbage", input: "John 3:16 and more", wantNil: true},
		{name: "descending verse range", input: "John 3:16-2", wantNil: true},
		{name: "descending chapter range", input: "John 3-2", wantNil: true},
		{name: "zero chapter", input: "John 0:5", wantNil: true},
		{name: "range without end", input: "John 3:16-", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Parse(%q) = %+v, want nil", tt.input, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Parse(%q) = nil, want %+v", tt.input, tt.want)
			}
			if *got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, *got, tt.want)
			}
		})
	}
}

// TestRoundTrip pins parse(locator.String()) == locator for each of the
// canonical rendering shapes.
func TestRoundTrip(t *testing.T) {
	locators := []Locator{
		{Book: "John", Chapter: 3},
		{Book: "John", Chapter: 3, Verse: 16},
		{Book: "Genesis", Chapter: 1, Verse: 1, EndVerse: 10},
		{Book: "Ephesians", Chapter: 1, EndChapter: 2},
		{Book: "Philippians", Chapter: 1, Verse: 27, EndChapter: 2, EndVerse: 11},
		{Book: "Song of Solomon", Chapter: 2, Verse: 1},
		{Book: "1 Samuel", Chapter: 17, Verse: 4, EndVerse: 11},
		{Book: "Psalms", Chapter: 119, Verse: 105},
	}
	for _, loc := range locators {
		if err := loc.Validate(); err != nil {
			t.Fatalf("fixture %+v invalid: %v", loc, err)
		}
		s := loc.String()
		got := Parse(s)
		if got == nil {
			t.Fatalf("Parse(%q) = nil", s)
		}
		if *got != loc {
			t.Errorf("round trip %q: got %+v, want %+v", s, *got, loc)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		loc  Locator
		want string
	}{
		{Locator{Book: "John", Chapter: 3, Verse: 16}, "John 3:16"},
		{Locator{Book: "Genesis", Chapter: 1, Verse: 1, EndVerse: 10}, "Genesis 1:1-10"},
		{Locator{Book: "Ephesians", Chapter: 1, EndChapter: 2}, "Ephesians 1-2"},
		{Locator{Book: "Philippians", Chapter: 1, Verse: 27, EndChapter: 2, EndVerse: 11}, "Philippians 1:27-2:11"},
		{Locator{Book: "Obadiah", Chapter: 1}, "Obadiah 1"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String(%+v) = %q, want %q", tt.loc, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		loc     Locator
		wantErr bool
	}{
		{"single verse", Locator{Book: "John", Chapter: 3, Verse: 16}, false},
		{"whole chapter", Locator{Book: "John", Chapter: 3}, false},
		{"chapter range", Locator{Book: "John", Chapter: 1, EndChapter: 3}, false},
		{"unknown book", Locator{Book: "Gondor", Chapter: 1}, true},
		{"zero chapter", Locator{Book: "John", Chapter: 0}, true},
		{"end chapter before start", Locator{Book: "John", Chapter: 3, EndChapter: 2}, true},
		{"end verse without verse", Locator{Book: "John", Chapter: 3, EndVerse: 5}, true},
		{"descending same-chapter range", Locator{Book: "John", Chapter: 3, Verse: 16, EndVerse: 2}, true},
		{"cross-chapter without end verse", Locator{Book: "John", Chapter: 3, Verse: 16, EndChapter: 4}, true},
		{"cross-chapter range", Locator{Book: "John", Chapter: 3, Verse: 16, EndChapter: 4, EndVerse: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.loc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.loc, err, tt.wantErr)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	wholeChapter := Locator{Book: "John", Chapter: 3}
	if !wholeChapter.IsWholeChapter() || wholeChapter.IsRange() {
		t.Errorf("whole chapter predicates wrong: %+v", wholeChapter)
	}

	chapterRange := Locator{Book: "Ephesians", Chapter: 1, EndChapter: 2}
	if !chapterRange.IsChapterRange() || !chapterRange.IsRange() {
		t.Errorf("chapter range predicates wrong: %+v", chapterRange)
	}

	crossChapter := Locator{Book: "Philippians", Chapter: 1, Verse: 27, EndChapter: 2, EndVerse: 11}
	if !crossChapter.IsCrossChapter() || !crossChapter.IsRange() || crossChapter.IsWholeChapter() {
		t.Errorf("cross-chapter predicates wrong: %+v", crossChapter)
	}

	single := Locator{Book: "John", Chapter: 3, Verse: 16}
	if single.IsRange() || single.IsWholeChapter() || single.IsCrossChapter() {
		t.Errorf("single verse predicates wrong: %+v", single)
	}
}
