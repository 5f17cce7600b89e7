package naming

import (
	"fmt"
	"reflect"
	"testing"
)

func TestSplitExt(t *testing.T) {
	tests := []struct {
		name     string
		wantStem string
		wantExt  string
	}{
		{"photo.jpg", "photo", ".jpg"},
		{"dir/photo.jpg", "dir/photo", ".jpg"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"README", "README", ""},
		{".hidden", ".hidden", ""},
		{"dir.v2/README", "dir.v2/README", ""},
		{"2023-05-01 trip.JPG", "2023-05-01 trip", ".JPG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext := SplitExt(tt.name)
			if stem != tt.wantStem || ext != tt.wantExt {
				t.Errorf("SplitExt(%q) = (%q, %q), want (%q, %q)", tt.name, stem, ext, tt.wantStem, tt.wantExt)
			}
		})
	}
}

func TestClaims_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		requests [][2]string // owner, proposed
		want     []string
	}{
		{
			name:     "no conflict",
			requests: [][2]string{{"a", "x.jpg"}, {"b", "y.jpg"}},
			want:     []string{"x.jpg", "y.jpg"},
		},
		{
			name:     "numeric suffix before extension",
			requests: [][2]string{{"a", "x.jpg"}, {"b", "x.jpg"}, {"c", "x.jpg"}},
			want:     []string{"x.jpg", "x-1.jpg", "x-2.jpg"},
		},
		{
			name:     "no extension",
			requests: [][2]string{{"a", "notes"}, {"b", "notes"}},
			want:     []string{"notes", "notes-1"},
		},
		{
			name:     "same owner keeps its name",
			requests: [][2]string{{"a", "x.jpg"}, {"a", "x.jpg"}},
			want:     []string{"x.jpg", "x.jpg"},
		},
		{
			name:     "suffixed name already proposed directly",
			requests: [][2]string{{"a", "x-1.jpg"}, {"b", "x.jpg"}, {"c", "x.jpg"}},
			want:     []string{"x-1.jpg", "x.jpg", "x-2.jpg"},
		},
		{
			name:     "full paths",
			requests: [][2]string{{"a", "out/2023-01-01/IMG.jpg"}, {"b", "out/2023-01-01/IMG.jpg"}},
			want:     []string{"out/2023-01-01/IMG.jpg", "out/2023-01-01/IMG-1.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClaims()
			var got []string
			for _, r := range tt.requests {
				got = append(got, c.Resolve(r[0], r[1]))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClaims_ClaimReservesName(t *testing.T) {
	c := NewClaims()
	if !c.Claim("2023-05-01.jpg", "2023-05-01.jpg") {
		t.Fatal("Claim on empty set should succeed")
	}
	if c.Claim("other", "2023-05-01.jpg") {
		t.Error("Claim should fail for a name held by another owner")
	}

	if got := c.Resolve("photo.jpg", "2023-05-01.jpg"); got != "2023-05-01-1.jpg" {
		t.Errorf("Resolve() = %q, want %q", got, "2023-05-01-1.jpg")
	}
	if got := c.Resolve("2023-05-01.jpg", "2023-05-01.jpg"); got != "2023-05-01.jpg" {
		t.Errorf("owner should keep its reserved name, got %q", got)
	}

	owner, ok := c.Owner("2023-05-01-1.jpg")
	if !ok || owner != "photo.jpg" {
		t.Errorf("Owner() = %q, %v", owner, ok)
	}
}

func TestClaims_Exists(t *testing.T) {
	onDisk := map[string]bool{"x.jpg": true, "x-1.jpg": true}
	c := NewClaims()
	c.Exists = func(name string) bool { return onDisk[name] }

	if got := c.Resolve("a", "x.jpg"); got != "x-2.jpg" {
		t.Errorf("Resolve() = %q, want %q", got, "x-2.jpg")
	}
}

func TestClaims_NeverReturnsSameNameTwice(t *testing.T) {
	c := NewClaims()
	seen := make(map[string]string)
	proposals := []string{"a.jpg", "a.jpg", "a-1.jpg", "a.jpg", "b", "b", "a-2.jpg", ".x", ".x"}

	for i, p := range proposals {
		owner := fmt.Sprintf("file%d", i)
		got := c.Resolve(owner, p)
		if prev, dup := seen[got]; dup {
			t.Fatalf("name %q returned to both %s and %s", got, prev, owner)
		}
		seen[got] = owner
	}
}
