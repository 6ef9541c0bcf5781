package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritePrometheus(t *testing.T) {
	t.Parallel()

	c := NewCounter(`cfrand_test_total{result="ok"}`)
	c.Inc()
	c.Add(2)
	assert.Same(t, c, NewCounter(`cfrand_test_total{result="ok"}`))

	buf := &bytes.Buffer{}
	WritePrometheus(buf, false)
	assert.Contains(t, buf.String(), `cfrand_test_total{result="ok"} 3`)
	assert.Contains(t, buf.String(), `cfrand_log_lines{level="warning"}`)
	assert.NotContains(t, buf.String(), "go_goroutines")

	buf.Reset()
	WritePrometheus(buf, true)
	assert.Contains(t, buf.String(), "go_goroutines")
}
