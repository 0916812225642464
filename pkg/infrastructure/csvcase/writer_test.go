package csvcase

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterEmitsHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteInt("meta", "U", NoIndex, NoIndex, NoIndex, NoIndex, 3))
	require.NoError(t, w.WriteInt("meta", "T", NoIndex, NoIndex, NoIndex, NoIndex, 5))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "section,key,u,v,i,t,value", lines[0])
	assert.Equal(t, "meta,U,,,,,3", lines[1])
}

func TestWriterHeaderOnEmptyFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Flush())

	assert.Equal(t, "section,key,u,v,i,t,value\n", buf.String())
}

func TestWriterNoIndexRendersEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteValue("demand", "Demand", 1, NoIndex, 2, 3, 12.5))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "demand,Demand,1,,2,3,12.5", lines[1])
}

func TestWriteValueExactDecimals(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteValue("solver", "mip_gap", NoIndex, NoIndex, NoIndex, NoIndex, 1e-6))
	require.NoError(t, w.Flush())

	assert.Contains(t, buf.String(), "0.000001")
	assert.NotContains(t, buf.String(), "e-")
}
