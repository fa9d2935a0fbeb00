package runner

import "bytes"

// limitedWriter captures output up to a byte limit and silently discards the
// rest, so a chatty installer cannot balloon the run report.
type limitedWriter struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		w.truncated = true
		return len(p), nil
	}
	if len(p) > remaining {
		w.buf.Write(p[:remaining])
		w.truncated = true
		return len(p), nil
	}
	return w.buf.Write(p)
}

func (w *limitedWriter) String() string {
	if w.truncated {
		return w.buf.String() + "\n... (output truncated)"
	}
	return w.buf.String()
}
