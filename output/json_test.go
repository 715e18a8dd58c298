package output

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
)

func TestJSONPrinterStrings(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "plain", value: "x", want: `"x"`},
		{name: "empty", value: "", want: `""`},
		{name: "utf8 passthrough", value: "héllo", want: `"héllo"`},
		{name: "quote", value: `a"b`, want: `"a\"b"`},
		{name: "backslash", value: `a\b`, want: `"a\\b"`},
		{name: "newline", value: "a\nb", want: `"a\nb"`},
		{name: "tab", value: "a\tb", want: `"a\tb"`},
		{name: "backspace and formfeed", value: "\b\f", want: `"\b\f"`},
		{name: "control byte", value: "a\x01b", want: `"a\u0001b"`},
		{name: "unit separator", value: "\x1f", want: `"\u001f"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewJSONPrinter(&buf)
			p.WriteString([]byte(tt.value))
			if err := p.Flush(); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("WriteString(%q) = %q, want %q", tt.value, got, tt.want)
			}

			// Every escaped form must decode back to the input.
			var decoded string
			if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("Unmarshal(%q): %v", buf.String(), err)
			}
			if decoded != tt.value {
				t.Errorf("Unmarshal(%q) = %q, want %q", buf.String(), decoded, tt.value)
			}
		})
	}
}

func TestJSONPrinterRecordLayout(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSONPrinter(&buf)

	p.WriteFileHeader()
	p.WriteHeaderField(0, "a")

	p.WriteRecordStart(0)
	p.WriteFieldStart(0, "a")
	p.WriteInt32(1)
	p.WriteFieldStart(1, "b")
	p.WriteNull()
	p.WriteRecordStop()

	p.WriteRecordStart(1)
	p.WriteFieldStart(0, "a")
	p.WriteFloat64(math.Inf(1))
	p.WriteFieldStart(1, "b")
	p.WriteString([]byte("x"))
	p.WriteRecordStop()

	p.WriteFileFooter()
	if err := p.Flush(); err != nil {
		t.Fatal(err)
	}

	want := `[{"a":1,"b":null},{"a":null,"b":"x"}]`
	if got := buf.String(); got != want {
		t.Errorf("stream = %q, want %q", got, want)
	}

	if !json.Valid(buf.Bytes()) {
		t.Errorf("stream %q is not valid JSON", buf.String())
	}
}

func TestJSONPrinterDateAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSONPrinter(&buf)

	p.WriteFileHeader()
	p.WriteRecordStart(0)
	p.WriteFieldStart(0, "d")
	p.WriteDate(-1)
	p.WriteFieldStart(1, "t")
	p.WriteTimestampMicros(1569283200000000)
	p.WriteRecordStop()
	p.WriteFileFooter()
	if err := p.Flush(); err != nil {
		t.Fatal(err)
	}

	want := `[{"d":"1969-12-31","t":"2019-09-24"}]`
	if got := buf.String(); got != want {
		t.Errorf("stream = %q, want %q", got, want)
	}
}
