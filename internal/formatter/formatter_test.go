package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContent struct{}

func (stubContent) ToHTML() (string, error)     { return "<p>x</p>", nil }
func (stubContent) ToText() (string, error)     { return "x", nil }
func (stubContent) ToMarkdown() (string, error) { return "# x", nil }
func (stubContent) ToJSON() ([]byte, error)     { return []byte(`{"x":1}`), nil }
func (stubContent) ToCSV() (string, error)      { return "x\n", nil }

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"html":     "<p>x</p>",
		"text":     "x",
		"markdown": "# x",
		"json":     `{"x":1}`,
		"csv":      "x\n",
	}
	for format, want := range cases {
		got, err := Format(stubContent{}, format)
		require.NoError(t, err, format)
		assert.Equal(t, want, got, format)
		assert.True(t, Valid(format))
	}

	_, err := Format(stubContent{}, "yaml")
	assert.Error(t, err)
	assert.False(t, Valid("yaml"))
}

func TestInferFromExtension(t *testing.T) {
	assert.Equal(t, "markdown", InferFromExtension("listing.MD"))
	assert.Equal(t, "json", InferFromExtension("out/listing.json"))
	assert.Equal(t, "html", InferFromExtension("a.htm"))
	assert.Equal(t, "csv", InferFromExtension("a.csv"))
	assert.Equal(t, "text", InferFromExtension("a.txt"))
	assert.Equal(t, "", InferFromExtension("a.bin"))
}
