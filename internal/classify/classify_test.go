package classify

import "testing"

func TestClassifyKnownExtensions(t *testing.T) {
	table := MustTable(map[string][]string{
		"images":    {"jpg", "png"},
		"documents": {".pdf", "TXT"},
	})

	cases := []struct {
		ext  string
		want string
	}{
		{"jpg", "images"},
		{".jpg", "images"},
		{"JPG", "images"},
		{".PDF", "documents"},
		{"txt", "documents"},
	}
	for _, tc := range cases {
		if got := table.Classify(tc.ext); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.ext, got, tc.want)
		}
	}
}

func TestClassifyUnmatchedReturnsOther(t *testing.T) {
	table := MustTable(map[string][]string{"images": {"jpg"}})

	for _, ext := range []string{"xyz", "", ".", "tar.gz", "jpeg"} {
		if got := table.Classify(ext); got != OtherCategory {
			t.Errorf("Classify(%q) = %q, want %q", ext, got, OtherCategory)
		}
	}
}

func TestNewTableRejectsDuplicateExtension(t *testing.T) {
	_, err := NewTable(map[string][]string{
		"images": {"jpg"},
		"photos": {"JPG"},
	})
	if err == nil {
		t.Fatal("expected error for extension mapped to two categories")
	}
}

func TestNewTableRejectsReservedCategory(t *testing.T) {
	_, err := NewTable(map[string][]string{OtherCategory: {"bin"}})
	if err == nil {
		t.Fatal("expected error for reserved category")
	}
}

func TestNewTableAllowsRepeatWithinCategory(t *testing.T) {
	table, err := NewTable(map[string][]string{"images": {"jpg", ".jpg", "JPG"}})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if got := table.Classify("jpg"); got != "images" {
		t.Fatalf("Classify(jpg) = %q, want images", got)
	}
}

func TestCategoriesIncludesOtherLast(t *testing.T) {
	table := MustTable(map[string][]string{"images": {"jpg"}, "audio": {"mp3"}})
	got := table.Categories()
	want := []string{"audio", "images", OtherCategory}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Categories() = %v, want %v", got, want)
		}
	}
}
