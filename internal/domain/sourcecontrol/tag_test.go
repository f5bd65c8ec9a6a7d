// Package sourcecontrol provides domain types for source control operations.
package sourcecontrol

import "testing"

func TestNewTag(t *testing.T) {
	tag := NewTag("v1.0.0", CommitHash("abc123"))

	if tag.Name() != "v1.0.0" {
		t.Errorf("Name() = %v, want v1.0.0", tag.Name())
	}
	if tag.Hash() != CommitHash("abc123") {
		t.Errorf("Hash() = %v, want abc123", tag.Hash())
	}
	if !tag.IsVersionTag() {
		t.Error("IsVersionTag() should be true for v1.0.0")
	}
	if got := tag.Version().String(); got != "1.0.0" {
		t.Errorf("Version() = %v, want 1.0.0", got)
	}
}

func TestNewTag_NonVersionTag(t *testing.T) {
	for _, name := range []string{"release-candidate", "1.2", "latest", "v1.2.3.4"} {
		tag := NewTag(name, CommitHash("abc123"))
		if tag.IsVersionTag() {
			t.Errorf("IsVersionTag() should be false for %q", name)
		}
		if tag.Version() != nil {
			t.Errorf("Version() should be nil for %q", name)
		}
	}
}

func names(tl TagList) []string {
	out := make([]string, len(tl))
	for i, t := range tl {
		out[i] = t.Name()
	}
	return out
}

func TestTagList_SortedDescending(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{
			name: "semver precedence not lexical",
			tags: []string{"v1.9.0", "v1.10.0", "v1.2.0"},
			want: []string{"v1.10.0", "v1.9.0", "v1.2.0"},
		},
		{
			name: "invalid tags dropped",
			tags: []string{"nightly", "v0.1.0", "release-1.0"},
			want: []string{"v0.1.0"},
		},
		{
			name: "prerelease below release",
			tags: []string{"2.0.0-rc.1", "1.9.9", "2.0.0"},
			want: []string{"2.0.0", "2.0.0-rc.1", "1.9.9"},
		},
		{
			name: "equal versions keep order",
			tags: []string{"v1.2.0", "1.2.0"},
			want: []string{"v1.2.0", "1.2.0"},
		},
		{
			name: "only invalid",
			tags: []string{"foo", "bar"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tl TagList
			for _, n := range tt.tags {
				tl = append(tl, NewTag(n, "h"))
			}
			got := names(tl.SortedDescending())
			if len(got) != len(tt.want) {
				t.Fatalf("SortedDescending() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SortedDescending()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTagList_Latest(t *testing.T) {
	tl := TagList{
		NewTag("v1.0.0", "a"),
		NewTag("docs", "b"),
		NewTag("v2.1.0", "c"),
		NewTag("v2.0.0", "d"),
	}

	latest := tl.Latest()
	if latest == nil || latest.Name() != "v2.1.0" {
		t.Errorf("Latest() = %v, want v2.1.0", latest)
	}

	if got := (TagList{}).Latest(); got != nil {
		t.Errorf("Latest() on empty list = %v, want nil", got)
	}
	if got := (TagList{NewTag("docs", "x")}).Latest(); got != nil {
		t.Errorf("Latest() with no version tags = %v, want nil", got)
	}
}

func TestTagList_VersionTags(t *testing.T) {
	tl := TagList{NewTag("v1.0.0", "a"), nil, NewTag("x", "b"), NewTag("1.1.0", "c")}
	got := names(tl.VersionTags())
	if len(got) != 2 || got[0] != "v1.0.0" || got[1] != "1.1.0" {
		t.Errorf("VersionTags() = %v", got)
	}
}

func TestHistory_Since(t *testing.T) {
	if got := (History{}).Since(); got != "" {
		t.Errorf("Since() = %q, want empty", got)
	}
	h := History{LastRelease: NewTag("v3.0.0", "abc")}
	if got := h.Since(); got != "v3.0.0" {
		t.Errorf("Since() = %q, want v3.0.0", got)
	}
}
