package xmltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "self-closing element",
			input: `<MpeSettings />`,
		},
		{
			name:  "expanded empty element",
			input: `<Sends></Sends>`,
		},
		{
			name:  "attributes",
			input: `<AudioTrack Id="14" Frozen="false" />`,
		},
		{
			name:  "escaped attribute value",
			input: `<EffectiveName Value="Drums &amp; Bass &quot;wet&quot;" />`,
		},
		{
			name:  "dotted tag name",
			input: `<ControllerTargets.0 Id="85836" LockEnvelope="0" />`,
		},
		{
			name: "indented subtree",
			input: "<LiveSet>\n\t<Tracks>\n\t\t<AudioTrack Id=\"1\" />\n\t</Tracks>\n" +
				"\t<NextPointeeId Value=\"100\" />\n</LiveSet>",
		},
		{
			name:  "character data",
			input: `<Annotation>free text &amp; more</Annotation>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.input, string(Serialize(root)))
		})
	}
}

func TestParseSkipsPrologAndBOM(t *testing.T) {
	input := "\xEF\xBB\xBF<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<Ableton Creator=\"Ableton Live 12.0\">\n\t<LiveSet />\n</Ableton>\n"
	root, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Equal(t, "Ableton", root.Tag)

	creator, ok := root.Attr("Creator")
	require.True(t, ok)
	require.Equal(t, "Ableton Live 12.0", creator)

	// Serialization covers the root element only; prolog and trailing
	// newline are the container's concern.
	require.Equal(t,
		"<Ableton Creator=\"Ableton Live 12.0\">\n\t<LiveSet />\n</Ableton>",
		string(Serialize(root)))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "not an element", input: "hello"},
		{name: "unterminated element", input: "<LiveSet"},
		{name: "mismatched end tag", input: "<LiveSet></Tracks>"},
		{name: "missing end tag", input: "<LiveSet><Tracks /="},
		{name: "trailing content", input: "<LiveSet />extra"},
		{name: "second root element", input: "<LiveSet /><LiveSet />"},
		{name: "comment", input: "<!-- nope --><LiveSet />"},
		{name: "single-quoted attribute", input: "<AudioTrack Id='1' />"},
		{name: "attribute without value", input: "<AudioTrack Id />"},
		{name: "unterminated attribute", input: `<AudioTrack Id="1 />`},
		{name: "unterminated declaration", input: "<?xml version=\"1.0\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
		})
	}
}

func TestParseExpandedFlag(t *testing.T) {
	root, err := Parse([]byte(`<Mixer><Sends></Sends><Speaker /></Mixer>`))
	require.NoError(t, err)

	sends := root.Find("Sends")
	require.NotNil(t, sends)
	require.True(t, sends.Expanded)

	speaker := root.Find("Speaker")
	require.NotNil(t, speaker)
	require.False(t, speaker.Expanded)
}

func TestParsePreservesRawEscapes(t *testing.T) {
	// The stored attribute keeps the source escapes; Attr unescapes on read.
	root, err := Parse([]byte(`<Name Value="A &amp; B" />`))
	require.NoError(t, err)

	raw, ok := root.RawAttr("Value")
	require.True(t, ok)
	require.Equal(t, "A &amp; B", raw)

	val, ok := root.Attr("Value")
	require.True(t, ok)
	require.Equal(t, "A & B", val)
}
