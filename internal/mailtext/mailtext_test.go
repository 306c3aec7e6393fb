package mailtext

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "plain text untouched",
			in:   "hello world",
			want: "hello world",
		},
		{
			name: "tags removed",
			in:   "<div><b>Team sync</b> at <i>10:00</i></div>",
			want: "Team sync at 10:00",
		},
		{
			name: "breaks become newlines",
			in:   "line one<br>line two</p>line three",
			want: "line one\nline two\nline three",
		},
		{
			name: "script dropped",
			in:   "<script>alert(1)</script>visible<style>p{}</style>",
			want: "visible",
		},
		{
			name: "entities decoded",
			in:   "Q&amp;A &lt;today&gt;",
			want: "Q&A <today>",
		},
		{
			name: "blank runs collapsed",
			in:   "a<br><br><br><br>b",
			want: "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "empty", in: "", max: 100, want: ""},
		{name: "single line", in: "hello", max: 100, want: "hello"},
		{name: "skips blank lines", in: "\n  \nsecond line\nthird", max: 100, want: "second line"},
		{name: "caps length", in: "abcdefgh", max: 4, want: "abcd"},
		{name: "trims", in: "  padded  ", max: 100, want: "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstLine(tt.in, tt.max); got != tt.want {
				t.Errorf("FirstLine(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
