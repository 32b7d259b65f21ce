package objmtl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseMTLReadsAllKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.mtl")
	content := "" +
		"newmtl glossyfloor\n" +
		"Kd 0.2 0.3 0.4\n" +
		"Ks 0.9 0.9 0.9\n" +
		"Ni 1.33\n" +
		"Ns 50\n" +
		"aniso 0.5\n" +
		"Ke 0 0 0\n" +
		"illum 2\n" +
		"map_Kd diffuse.ppm\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	materials, err := parseMTL(path)
	if err != nil {
		t.Fatalf("parseMTL: %v", err)
	}
	m, ok := materials["glossyfloor"]
	if !ok {
		t.Fatal("expected material \"glossyfloor\" to be present")
	}
	if m.Kd.X != 0.2 || m.Kd.Y != 0.3 || m.Kd.Z != 0.4 {
		t.Errorf("Kd = %v, want (0.2, 0.3, 0.4)", m.Kd)
	}
	if m.Ni != 1.33 {
		t.Errorf("Ni = %f, want 1.33", m.Ni)
	}
	if m.Ns != 50 {
		t.Errorf("Ns = %f, want 50", m.Ns)
	}
	if m.Aniso != 0.5 {
		t.Errorf("Aniso = %f, want 0.5", m.Aniso)
	}
	if m.Illum != 2 {
		t.Errorf("Illum = %d, want 2", m.Illum)
	}
	wantMapKd := filepath.Join(dir, "diffuse.ppm")
	if m.MapKdPath != wantMapKd {
		t.Errorf("MapKdPath = %q, want %q", m.MapKdPath, wantMapKd)
	}
}

func TestParseMTLMultipleMaterials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.mtl")
	content := "newmtl a\nKd 1 0 0\n\nnewmtl b\nKd 0 1 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	materials, err := parseMTL(path)
	if err != nil {
		t.Fatalf("parseMTL: %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("len(materials) = %d, want 2", len(materials))
	}
	if materials["a"].Kd.X != 1 {
		t.Errorf("a.Kd.X = %f, want 1", materials["a"].Kd.X)
	}
	if materials["b"].Kd.Y != 1 {
		t.Errorf("b.Kd.Y = %f, want 1", materials["b"].Kd.Y)
	}
}
