package playlist

import "testing"

func TestParseAttributeList_simple(t *testing.T) {
	attrs := ParseAttributeList("BANDWIDTH=1727000,CODECS=avc1")
	if attrs["BANDWIDTH"] != "1727000" {
		t.Errorf("BANDWIDTH: got %q", attrs["BANDWIDTH"])
	}
	if attrs["CODECS"] != "avc1" {
		t.Errorf("CODECS: got %q", attrs["CODECS"])
	}
	if len(attrs) != 2 {
		t.Errorf("expected 2 attributes, got %d", len(attrs))
	}
}

func TestParseAttributeList_quoted_comma(t *testing.T) {
	attrs := ParseAttributeList(`K1=V1,K2="a,b",K3=V3`)
	want := map[string]string{"K1": "V1", "K2": "a,b", "K3": "V3"}
	if len(attrs) != len(want) {
		t.Fatalf("expected %d attributes, got %d: %v", len(want), len(attrs), attrs)
	}
	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("%s: got %q want %q", k, attrs[k], v)
		}
	}
}

func TestParseAttributeList_quotes_stripped_once(t *testing.T) {
	attrs := ParseAttributeList(`CODECS="avc1.64001f,mp4a.40.2"`)
	if attrs["CODECS"] != "avc1.64001f,mp4a.40.2" {
		t.Errorf("quotes should be stripped exactly once: got %q", attrs["CODECS"])
	}
}

func TestParseAttributeList_last_write_wins(t *testing.T) {
	attrs := ParseAttributeList("K=first,K=second")
	if attrs["K"] != "second" {
		t.Errorf("duplicate key should resolve last-write-wins: got %q", attrs["K"])
	}
}

func TestParseAttributeList_empty(t *testing.T) {
	attrs := ParseAttributeList("")
	if len(attrs) != 0 {
		t.Errorf("expected no attributes, got %v", attrs)
	}
}

func TestParseAttributeList_unterminated_quote_lenient(t *testing.T) {
	// The scan is best-effort: an odd quote swallows the rest of the string
	// into the pending value instead of failing.
	attrs := ParseAttributeList(`K1="a,b,K2=V2`)
	if _, ok := attrs["K2"]; ok {
		t.Error("unterminated quote should not start a new pair")
	}
	if attrs["K1"] != `"a,b,K2=V2` {
		t.Errorf("pending value should keep the odd quote: got %q", attrs["K1"])
	}
}
