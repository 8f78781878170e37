package vocab

import "testing"

func TestLocal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://example.org/onto#Color", "Color"},
		{"http://example.org/onto/Color", "Color"},
		{RDFType, "type"},
		{"bare", "bare"},
	}
	for _, c := range cases {
		if got := Local(c.in); got != c.want {
			t.Errorf("Local(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNamespace(t *testing.T) {
	if got := Namespace("http://example.org/onto#Color"); got != "http://example.org/onto#" {
		t.Errorf("Namespace = %q", got)
	}
	if got := Namespace(RDFSLabel); got != RDFSNS {
		t.Errorf("Namespace = %q, want %q", got, RDFSNS)
	}
}
