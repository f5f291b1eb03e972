package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestRowProgress_Render(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewRowProgress(buf, "heroes")

	progress.Start(4)
	progress.Update(2)
	progress.Finish()

	output := buf.String()
	for _, want := range []string{"heroes [", " 50% 2/4 rows", "100% 4/4 rows", "rows/s"} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q missing %q", output, want)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("Finish() should end the line")
	}
}

func TestRowProgress_DefaultLabel(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewRowProgress(buf, "")

	progress.Start(1)
	if !strings.HasPrefix(buf.String(), "\rrows [") {
		t.Errorf("output %q, want the default label", buf.String())
	}
}

func TestRowProgress_ClampsOverrun(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewRowProgress(buf, "heroes")

	progress.Start(2)
	progress.Update(5)

	if !strings.Contains(buf.String(), "2/2 rows") {
		t.Errorf("output %q, want the count clamped to the total", buf.String())
	}
}

func TestRowProgress_SkipsUnchangedPercent(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewRowProgress(buf, "big")

	progress.Start(1000)
	for i := int64(0); i < 10; i++ {
		progress.Update(i)
	}

	// 0..9 of 1000 all round down to 0%, drawn once by Start.
	if n := strings.Count(buf.String(), "\r"); n != 1 {
		t.Errorf("redraws = %d, want 1", n)
	}
}

func TestRowProgress_ZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewRowProgress(buf, "empty")

	progress.Start(0)
	progress.Update(0)
	progress.Finish()

	if buf.Len() != 0 {
		t.Errorf("output %q, want nothing without a total", buf.String())
	}
}

func TestRowProgress_Concurrent(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewRowProgress(buf, "rows")
	progress.Start(1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				progress.Update(int64(start*100 + j))
			}
		}(i)
	}
	wg.Wait()
	progress.Finish()

	if !strings.Contains(buf.String(), "1000/1000 rows") {
		t.Errorf("output does not end with a full bar")
	}
}
