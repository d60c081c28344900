package ingestion

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

const productHeader = "STATIONS_ID;MESS_DATUM;QN_9;TT_TU;RF_TU;eor\n"

// sampleProduct holds two readings on 2019-01-01 and 2020-01-01 each.
func sampleProduct() string {
	return productHeader +
		"1766;2019010110;    3;  20.0;  93.0;eor\n" +
		"1766;2019010111;    3;   3.0;  93.0;eor\n" +
		"1766;2020010110;    3;  15.0;  90.0;eor\n" +
		"1766;2020010111;    3;   6.0;  91.0;eor\n"
}

// buildZip writes an archive containing files (name -> content) and returns its bytes.
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func writeTempFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, content, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return p
}
